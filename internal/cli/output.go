// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatMembers].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/metrics"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/report"
	"github.com/agbru/orbitcalc/internal/ui"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the report path. A ".json" extension selects JSON.
	OutputFile string
	// Quiet prints bit strings only.
	Quiet bool
	// JSON prints the report as JSON on the output writer.
	JSON bool
}

// resolveAction maps a presentation action name to its wheel.Action,
// falling back to the twisted rotation.
func resolveAction(name string) wheel.Action {
	if a, err := wheel.ActionByName(name); err == nil {
		return a
	}
	return wheel.TwistedRotation{}
}

// DisplayResult prints the representatives of result as a table. Verbose
// mode lists the orbit members under each row; details mode appends the
// orbit size histogram and the estimated working set.
func DisplayResult(result orchestration.ClassificationResult, opts orchestration.PresentationOptions, out io.Writer) {
	action := resolveAction(opts.Action)
	reps := result.Representatives

	fmt.Fprintf(out, "\n--- Classification Result ---\n")
	fmt.Fprintf(out, "Universe: %sN=%d%s (%d configurations), action %s%s%s\n",
		ui.ColorMagenta(), opts.N, ui.ColorReset(), uint64(1)<<uint(opts.N),
		ui.ColorCyan(), action.Name(), ui.ColorReset())
	fmt.Fprintf(out, "Found %s%d%s orbits with %s in %s%s%s.\n\n",
		ui.ColorGreen(), len(reps), ui.ColorReset(), result.Name,
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())

	bitsWidth := max(opts.N, len("Bits"))
	fmt.Fprintf(out, "%-6s %-*s %5s  %s\n", "Orbit", bitsWidth, "Bits", "Size", "Spokes")
	for _, r := range reps {
		fmt.Fprintf(out, "%s%-6s%s %-*s %5d  %s\n",
			ui.ColorBlue(), r.Label(), ui.ColorReset(),
			bitsWidth, r.Config.String(), r.OrbitSize, format.FormatSpokes(r.Config.Spokes()))
		if opts.Verbose {
			fmt.Fprintf(out, "       %s%s%s\n", ui.ColorCyan(), FormatMembers(r.Orbit(action), MemberPreviewLimit), ui.ColorReset())
		}
	}

	if opts.Details {
		DisplayOrbitStats(metrics.ComputeOrbitStats(opts.N, reps), out)
		if est := orbit.EstimateMemory(opts.N, opts.Algo); est > 0 {
			fmt.Fprintf(out, "Estimated working set: %s\n", format.FormatBytes(est))
		}
	}
}

// FormatMembers renders up to limit orbit members separated by spaces,
// followed by an ellipsis with the number of hidden members.
func FormatMembers(o wheel.Orbit, limit int) string {
	members := report.MemberStrings(o)
	if limit > 0 && len(members) > limit {
		hidden := len(members) - limit
		return strings.Join(members[:limit], " ") + fmt.Sprintf(" ... (+%d)", hidden)
	}
	return strings.Join(members, " ")
}

// DisplayOrbitStats prints the orbit size histogram.
func DisplayOrbitStats(s metrics.OrbitStats, out io.Writer) {
	fmt.Fprintf(out, "\n--- Detailed Orbit Analysis ---\n")
	fmt.Fprintf(out, "Orbits:          %d\n", s.Orbits)
	fmt.Fprintf(out, "Coverage:        %d/%d configurations\n", s.Configurations, uint64(1)<<uint(s.N))
	fmt.Fprintf(out, "Largest orbit:   %d\n", s.Largest)
	fmt.Fprintf(out, "Smallest orbit:  %d\n", s.Smallest)
	fmt.Fprintf(out, "Size histogram:\n")
	for _, b := range s.Histogram {
		fmt.Fprintf(out, "  size %3d: %d\n", b.Size, b.Count)
	}
}

// FormatQuietResult returns one bit string per line, for scripting.
func FormatQuietResult(reps []orbit.Representative) string {
	lines := make([]string, len(reps))
	for i, r := range reps {
		lines[i] = r.Config.String()
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult prints FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, reps []orbit.Representative) {
	if len(reps) == 0 {
		return
	}
	fmt.Fprintln(out, FormatQuietResult(reps))
}

// WriteResultToFile writes the report of result to config.OutputFile,
// creating parent directories as needed. A ".json" extension selects JSON,
// anything else the plain-text table.
func WriteResultToFile(result orchestration.ClassificationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating directory %s", dir)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "creating output file %s", config.OutputFile)
	}
	defer file.Close()

	rep := report.New(opts.N, resolveAction(opts.Action), result.Name, result.Representatives, result.Duration, opts.Verbose)
	if strings.EqualFold(filepath.Ext(config.OutputFile), ".json") {
		return report.WriteJSON(file, rep)
	}
	return report.WriteText(file, rep, time.Now())
}

// DisplayResultWithConfig prints result in the mode selected by config and
// writes the report file when one is configured.
func DisplayResultWithConfig(out io.Writer, result orchestration.ClassificationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	switch {
	case config.JSON:
		rep := report.New(opts.N, resolveAction(opts.Action), result.Name, result.Representatives, result.Duration, opts.Verbose)
		if err := report.WriteJSON(out, rep); err != nil {
			return err
		}
	case config.Quiet:
		DisplayQuietResult(out, result.Representatives)
	default:
		DisplayResult(result, opts, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, opts, config); err != nil {
			return err
		}
		if !config.Quiet && !config.JSON {
			fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
