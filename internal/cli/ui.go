//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/progress"
)

const (
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
	// MemberPreviewLimit caps the orbit members printed per representative
	// in verbose mode.
	MemberPreviewLimit = 32
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a TTY.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed, then calls wg.Done.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - progressChan: The updates from the running classifiers.
//   - numClassifiers: The number of classifiers reporting on the channel.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numClassifiers int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numClassifiers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Classifying"
	if agg.IsMultiClassifier() {
		label = fmt.Sprintf("Comparing %d strategies", numClassifiers)
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(0, 0, ProgressBarWidth)))
	s.Start()
	defer s.Stop()

	for update := range progressChan {
		p := agg.Update(update)
		s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(p.AverageProgress, p.ETA, ProgressBarWidth)))
	}
}
