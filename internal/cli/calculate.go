package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/orbitcalc/internal/config"
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/ui"
)

// PrintExecutionConfig displays the universe size, action, timeout and
// environment of the run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Classifying the %s2^%d%s configurations of a %d-slot wheel under the %s%s%s rotation, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), cfg.N,
		ui.ColorCyan(), cfg.Action, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%d%s workers, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.MemoryLimit != "" {
		fmt.Fprintf(out, "Memory limit: %s%s%s.\n", ui.ColorCyan(), cfg.MemoryLimit, ui.ColorReset())
	}
}

// PrintExecutionMode displays whether a single strategy runs or all of them
// are compared. classifiers must not be empty.
func PrintExecutionMode(classifiers []orbit.Classifier, cfg config.AppConfig, out io.Writer) {
	var modeDesc string
	if len(classifiers) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single classification with the %s%s%s strategy",
			ui.ColorGreen(), classifiers[0].Name(), ui.ColorReset())
		if est := orbit.EstimateMemory(cfg.N, cfg.Algo); est > 0 {
			modeDesc += fmt.Sprintf(" (working set ~%s)", format.FormatBytes(est))
		}
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
