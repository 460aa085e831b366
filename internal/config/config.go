package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "ORBITCALC_"

// Default values of the command-line flags.
const (
	DefaultN       = 7
	DefaultAction  = "twisted"
	DefaultTimeout = time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the number of wheel slots.
	N int
	// Algo is the registry name of the strategy, or "all".
	Algo string
	// Action is the name of the symmetry action.
	Action string
	// Workers bounds the parallel strategy's goroutines. Zero means adaptive.
	Workers int
	// Timeout bounds a classification run.
	Timeout time.Duration
	// Verbose lists the members of every orbit.
	Verbose bool
	// Details prints orbit statistics and memory usage.
	Details bool
	// Quiet prints only the representative bit strings.
	Quiet bool
	// OutputFile is the path of the report file. Empty disables it.
	OutputFile string
	// JSON prints a JSON report instead of the text report.
	JSON bool
	// TUI launches the interactive browser.
	TUI bool
	// Interactive launches the REPL.
	Interactive bool
	// Serve is the HTTP listen address. Empty disables the server.
	Serve string
	// Completion is the shell to generate a completion script for.
	Completion string
	// MemoryLimit is the largest allowed working set, e.g. "64MiB". Empty disables the check.
	MemoryLimit string
	// NoColor disables ANSI colors.
	NoColor bool
}

// ToOrbitOptions converts the configuration into classifier options.
// The action name must already have been validated.
func (c AppConfig) ToOrbitOptions() orbit.Options {
	action, _ := wheel.ActionByName(c.Action)
	return orbit.Options{Action: action, Workers: c.Workers}
}

// Validate checks the semantic validity of the configuration.
//
// Parameters:
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - error: A ValidationError for an out-of-range field value, a
//     ConfigError for any other problem, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Completion != "" || c.Serve != "" {
		if c.Completion != "" && !slices.Contains(supportedShells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q (accepted values: %s)", c.Completion, strings.Join(supportedShells, ", "))
		}
		return nil
	}
	if err := orbit.ValidateN(c.N); err != nil {
		return apperrors.NewConfigError("invalid -n: %v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("the timeout must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be zero (adaptive) or positive, got %d", c.Workers)}
	}
	if _, err := wheel.ActionByName(c.Action); err != nil {
		return apperrors.ValidationError{Field: "action", Message: fmt.Sprintf("unrecognized value %q (accepted values: %s)", c.Action, strings.Join(wheel.ActionNames(), ", "))}
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("unrecognized value %q (accepted values: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))}
	}
	if c.MemoryLimit != "" {
		if _, err := ParseMemoryLimit(c.MemoryLimit); err != nil {
			return apperrors.NewConfigError("invalid --memory-limit: %v", err)
		}
	}
	if c.Quiet && c.JSON {
		return apperrors.NewConfigError("--quiet and --json are mutually exclusive")
	}
	return nil
}

var supportedShells = []string{"bash", "zsh", "fish"}

// ParseConfig parses the command-line arguments, applies environment
// overrides and validates the result.
//
// The resolution order is: CLI flags, then ORBITCALC_* environment
// variables, then defaults.
//
// Parameters:
//   - programName: The name shown in the usage message.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Receives usage and parse errors.
//   - availableAlgos: The registered strategy names.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, a parse error, or a validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Strategy to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))
	config := AppConfig{}

	fs.IntVar(&config.N, "n", DefaultN, "Number of wheel slots (1-24).")
	fs.StringVar(&config.Algo, "algo", orbit.DefaultClassifier, algoHelp)
	fs.StringVar(&config.Action, "action", DefaultAction, "Symmetry action: 'twisted' or 'cyclic'.")
	fs.IntVar(&config.Workers, "workers", 0, "Goroutines used by the parallel strategy (0 = adaptive).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "List the members of every orbit.")
	fs.BoolVar(&config.Verbose, "verbose", false, "List the members of every orbit (alias).")
	fs.BoolVar(&config.Details, "d", false, "Show orbit statistics and memory usage.")
	fs.BoolVar(&config.Details, "details", false, "Show orbit statistics and memory usage (alias).")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the representative bit strings.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the representative bit strings (alias).")
	fs.StringVar(&config.OutputFile, "o", "", "Write the report to a file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the report to a file (alias).")
	fs.BoolVar(&config.JSON, "json", false, "Print the report as JSON.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive orbit browser.")
	fs.BoolVar(&config.Interactive, "i", false, "Start an interactive session.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session (alias).")
	fs.StringVar(&config.Serve, "serve", "", "Serve the HTTP API on the given address (e.g. :8080).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for the shell (bash, zsh, fish).")
	fs.StringVar(&config.MemoryLimit, "memory-limit", "", "Refuse runs whose working set exceeds this size (e.g. 64MiB).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Action = strings.ToLower(config.Action)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
