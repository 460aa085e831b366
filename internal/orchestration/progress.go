package orchestration

import (
	"time"

	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/progress"
)

// ProgressAggregator combines the progress of several classifiers into one
// average with an ETA. Both the CLI and the TUI consume it.
type ProgressAggregator struct {
	state          *format.ProgressWithETA
	numClassifiers int
}

// NewProgressAggregator returns an aggregator for numClassifiers runs, or nil
// if numClassifiers <= 0.
func NewProgressAggregator(numClassifiers int) *ProgressAggregator {
	if numClassifiers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:          format.NewProgressWithETA(numClassifiers),
		numClassifiers: numClassifiers,
	}
}

// AggregatedProgress is the result of processing one progress update.
type AggregatedProgress struct {
	ClassifierIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update processes one update and returns the aggregated view.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.ClassifierIndex, update.Value)
	return AggregatedProgress{
		ClassifierIndex: update.ClassifierIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumClassifiers returns the number of tracked classifiers.
func (a *ProgressAggregator) NumClassifiers() int {
	return a.numClassifiers
}

// IsMultiClassifier reports whether more than one classifier is tracked.
func (a *ProgressAggregator) IsMultiClassifier() bool {
	return a.numClassifiers > 1
}

// DrainChannel reads all updates from the channel until it is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
