package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the displayed estimate so a stalled run never shows absurd values.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest sample in the progress-rate EMA.
const etaSmoothing = 0.3

// ProgressState tracks the completion of several concurrent classifiers.
type ProgressState struct {
	mu             sync.Mutex
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a tracker for numCalculators classifiers.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records the progress of classifier index. Out-of-range indices are
// ignored and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= ps.numCalculators {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across all classifiers.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.averageLocked()
}

func (ps *ProgressState) averageLocked() float64 {
	if ps.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed estimate of the
// remaining time.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdate     time.Time
	lastProgress   float64
	progressRate   float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numCalculators classifiers.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdate:     now,
	}
}

// UpdateWithETA records an update and returns the average progress together
// with the current ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 while the rate is unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA compactly, e.g. "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a bar of length runes filled in proportion to progress.
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders a bracketed bar, percentage and ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	etaStr := FormatETA(eta)
	if clamp01(progress) >= 1 {
		etaStr = "done"
	}
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, etaStr)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
