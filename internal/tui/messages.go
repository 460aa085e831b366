package tui

import (
	"time"

	"github.com/agbru/orbitcalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	ClassifierIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-strategy results of a run.
type ComparisonResultsMsg struct {
	Results    []orchestration.ClassificationResult
	Generation uint64
}

// FinalResultMsg carries the representatives to browse.
type FinalResultMsg struct {
	Result     orchestration.ClassificationResult
	Options    orchestration.PresentationOptions
	Generation uint64
}

// ErrorMsg reports that no strategy completed.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// ClassificationCompleteMsg signals the end of a run.
type ClassificationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the session context ended.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg refreshes the elapsed timer while a run is in progress.
type TickMsg time.Time
