package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/progress"
)

// ClassificationResult is the outcome of one classifier run. It is the shared
// domain type between orchestration and presentation layers.
type ClassificationResult struct {
	// Name is the human-readable name of the strategy.
	Name string
	// Representatives holds one entry per orbit. It is nil if an error occurred.
	Representatives []orbit.Representative
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N int
	// Algo is the registry name selected by the user, or "all".
	Algo    string
	Action  string
	Verbose bool
	Details bool
}

// ProgressReporter displays classification progress. Implementations handle
// the visual representation (spinners, progress bars) while the orchestration
// layer coordinates the runs.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to the ProgressReporter interface.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, out io.Writer) {
	f(wg, progressChan, numClassifiers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents classification results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []ClassificationResult, out io.Writer)

	// PresentResult displays the representatives of a successful run.
	PresentResult(result ClassificationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports a failed run and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
