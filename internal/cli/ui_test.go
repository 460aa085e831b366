package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/orbitcalc/internal/cli/mocks"
	"github.com/agbru/orbitcalc/internal/progress"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if rs.s.Suffix != " test" {
		t.Errorf("suffix = %q", rs.s.Suffix)
	}
}

// withSpinner replaces newSpinner for the duration of a test.
func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSpinner := mocks.NewMockSpinner(ctrl)
	withSpinner(t, mockSpinner)

	var suffixes []string
	gomock.InOrder(
		mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) { suffixes = append(suffixes, s) }),
		mockSpinner.EXPECT().Start(),
		mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) { suffixes = append(suffixes, s) }).Times(2),
		mockSpinner.EXPECT().Stop(),
	)

	progressChan := make(chan progress.ProgressUpdate, 2)
	progressChan <- progress.ProgressUpdate{ClassifierIndex: 0, Value: 0.5}
	progressChan <- progress.ProgressUpdate{ClassifierIndex: 0, Value: 1.0}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if len(suffixes) != 3 {
		t.Fatalf("got %d suffix updates, want 3", len(suffixes))
	}
	if !strings.HasPrefix(suffixes[0], " Classifying [") {
		t.Errorf("first suffix = %q", suffixes[0])
	}
	if !strings.HasSuffix(suffixes[2], "ETA: done") {
		t.Errorf("final suffix = %q, want it to end with done", suffixes[2])
	}
}

func TestDisplayProgress_MultipleClassifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSpinner := mocks.NewMockSpinner(ctrl)
	withSpinner(t, mockSpinner)

	var first string
	mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		if first == "" {
			first = s
		}
	}).AnyTimes()
	mockSpinner.EXPECT().Start()
	mockSpinner.EXPECT().Stop()

	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 3, io.Discard)
	wg.Wait()

	if !strings.HasPrefix(first, " Comparing 3 strategies") {
		t.Errorf("label = %q", first)
	}
}

func TestDisplayProgress_ZeroClassifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	withSpinner(t, mocks.NewMockSpinner(ctrl)) // any call fails the test

	progressChan := make(chan progress.ProgressUpdate, 1)
	progressChan <- progress.ProgressUpdate{Value: 0.5}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
