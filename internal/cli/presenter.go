package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/metrics"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numClassifiers, out)
}

// CLIResultPresenter implements the orchestration presentation interfaces
// with colorized terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per strategy with its duration,
// orbit count and status. Padding is computed on the plain text so that
// escape sequences do not break the alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.ClassificationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durationWidth := len("Strategy"), len("Duration")
	durations := make([]string, len(results))
	for i, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durations[i] = p.FormatDuration(res.Duration)
		durationWidth = max(durationWidth, len(durations[i]))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sOrbits%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameWidth-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durationWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%sOK%s", ui.ColorGreen(), ui.ColorReset())
		orbits := fmt.Sprintf("%6d", len(res.Representatives))
		if res.Err != nil {
			status = fmt.Sprintf("%sFailed (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			orbits = fmt.Sprintf("%6s", "-")
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameWidth-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight("", durationWidth-len(durations[i])),
			orbits, status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// PresentResult prints the representatives of a successful run.
func (CLIResultPresenter) PresentResult(result orchestration.ClassificationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats d for the comparison table. Runs shorter than the
// clock resolution show as "< 1µs".
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleClassificationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats prints the allocator activity of a run.
func DisplayMemoryStats(d metrics.MemoryDelta, estimate uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Estimated working set: %s\n", format.FormatBytes(estimate))
	fmt.Fprintf(out, "  Heap (start/end max):  %s\n", format.FormatBytes(d.MaxEndpointHeap))
	fmt.Fprintf(out, "  Total allocated:       %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:             %d\n", d.GCCycles)
}
