// Package progress defines the progress types shared by the classifiers, the
// orchestration layer and the presenters.
package progress

import "sync"

// ProgressUpdate is a progress notification sent over a channel by a
// classifier running under orchestration.
type ProgressUpdate struct {
	// ClassifierIndex identifies the sender among concurrently running classifiers.
	ClassifierIndex int
	// Value is the completed fraction of the enumerated universe (0.0 to 1.0).
	Value float64
}

// ProgressCallback receives the completed fraction of a classification.
// Implementations must be safe for concurrent use.
type ProgressCallback func(progress float64)

// ReportThreshold is the minimum progress delta between two forwarded reports.
const ReportThreshold = 0.01

// NewChannelCallback returns a callback that forwards progress to ch, tagged
// with index. Sends never block: when the channel is full the update is
// dropped. A nil channel yields a no-op callback.
func NewChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	return func(v float64) {
		select {
		case ch <- ProgressUpdate{ClassifierIndex: index, Value: v}:
		default:
		}
	}
}

// Throttle wraps cb so that only reports advancing by at least
// ReportThreshold, and the final report of 1.0, are forwarded.
func Throttle(cb ProgressCallback) ProgressCallback {
	if cb == nil {
		return func(float64) {}
	}
	var (
		mu   sync.Mutex
		last = -1.0
	)
	return func(v float64) {
		mu.Lock()
		if v < 1.0 && v-last < ReportThreshold {
			mu.Unlock()
			return
		}
		last = v
		mu.Unlock()
		cb(v)
	}
}
