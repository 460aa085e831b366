package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/progress"
)

// programRef is a pointer to the tea.Program that survives model copies, so
// that background goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress as ProgressMsg, tagged
// with the generation of the run it observes.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress implements orchestration.ProgressReporter.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numClassifiers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			ClassifierIndex: ap.ClassifierIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter sends results to the browser instead of writing them.
// Messages are tagged with the generation of the run that produced them.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable implements orchestration.ResultPresenter.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.ClassificationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results, Generation: t.generation})
}

// PresentResult implements orchestration.ResultPresenter.
func (t *TUIResultPresenter) PresentResult(result orchestration.ClassificationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Options: opts, Generation: t.generation})
}

// FormatDuration implements orchestration.DurationFormatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.HandleClassificationError(err, duration, io.Discard, nil)
}
