package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/orbitcalc/internal/wheel"
)

// FlagCompletion describes a CLI flag for completion script generation.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // static suggestions; nil for flags without suggestions
	ValueName string   // value label; empty for boolean flags
	IsFile    bool     // value is a file path
	IsAlgo    bool     // value is a strategy name, supplied at generation time
	Section   string   // fish comment heading
}

// SupportedShells lists the shells GenerateCompletion accepts.
var SupportedShells = []string{"bash", "zsh", "fish"}

// flagRegistry lists every CLI flag. All three generators read it.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Short: "n", Help: "Number of wheel slots", Values: []string{"3", "5", "7", "9", "12"}, ValueName: "slots", Section: "Classification"},
	{Long: "algo", Help: "Classification strategy", IsAlgo: true, ValueName: "strategy", Section: "Classification"},
	{Long: "action", Help: "Symmetry action", Values: wheel.ActionNames(), ValueName: "action", Section: "Classification"},
	{Long: "workers", Help: "Parallel strategy workers (0 = adaptive)", ValueName: "count", Section: "Classification"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Classification"},
	{Long: "memory-limit", Help: "Refuse runs above this working set", Values: []string{"64MiB", "256MiB", "1GiB"}, ValueName: "size", Section: "Classification"},
	{Long: "verbose", Short: "v", Help: "List orbit members", Section: "Output"},
	{Long: "details", Short: "d", Help: "Show orbit statistics and memory", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print bit strings only", Section: "Output"},
	{Long: "json", Help: "Print a JSON report", Section: "Output"},
	{Long: "output", Short: "o", Help: "Write the report to a file", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "no-color", Help: "Disable colors", Section: "Output"},
	{Long: "tui", Help: "Browse orbits interactively", Section: "Modes"},
	{Long: "interactive", Short: "i", Help: "Start the REPL", Section: "Modes"},
	{Long: "serve", Help: "Serve the HTTP API on an address", Values: []string{":8080"}, ValueName: "addr", Section: "Modes"},
	{Long: "completion", Help: "Generate a completion script", Values: SupportedShells, ValueName: "shell", Section: "Modes"},
}

// GenerateCompletion writes the completion script for shell to out.
//
// Parameters:
//   - out: The destination of the script.
//   - shell: One of SupportedShells.
//   - algorithms: The registered strategy names.
//
// Returns:
//   - error: An error if the shell is unsupported or the write fails.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dashed forms of f, long first.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for orbitcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_orbitcalc_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _orbitcalc_completions orbitcalc
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, len(flagRegistry))
	for i, f := range flagRegistry {
		args[i] = zshArgEntry(f)
	}
	return fmt.Sprintf(`#compdef orbitcalc

# Zsh completion script for orbitcalc
# Place this file in a directory listed in $fpath

_orbitcalc() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_orbitcalc "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as an _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		value = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, value)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, value)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, value)
	}
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for orbitcalc",
		"# Add this to ~/.config/fish/completions/orbitcalc.fish",
		"",
		"complete -c orbitcalc -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, algorithms))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, algorithms []string) string {
	parts := []string{"complete -c orbitcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", strings.Join(algorithms, " ")))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
