package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orbit/mocks"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// recordingPresenter records what AnalyzeComparisonResults presents.
type recordingPresenter struct {
	tableRows int
	presented *ClassificationResult
	handled   error
}

func (p *recordingPresenter) PresentComparisonTable(results []ClassificationResult, _ io.Writer) {
	p.tableRows = len(results)
}

func (p *recordingPresenter) PresentResult(result ClassificationResult, _ PresentationOptions, _ io.Writer) {
	p.presented = &result
}

func (p *recordingPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	p.handled = err
	return apperrors.ExitCodeFor(err)
}

func reps(bits ...string) []orbit.Representative {
	out := make([]orbit.Representative, len(bits))
	for i, b := range bits {
		c, _ := wheel.Parse(b)
		out[i] = orbit.Representative{Ordinal: i + 1, Config: c, OrbitSize: 2 * len(b)}
	}
	return out
}

func TestExecuteClassifications(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	ok := mocks.NewMockClassifier(ctrl)
	ok.EXPECT().Name().Return("ok").AnyTimes()
	ok.EXPECT().Classify(gomock.Any(), gomock.Any(), 0, 3, gomock.Any()).Return(reps("000", "010"), nil)

	failing := mocks.NewMockClassifier(ctrl)
	failing.EXPECT().Name().Return("failing").AnyTimes()
	failing.EXPECT().Classify(gomock.Any(), gomock.Any(), 1, 3, gomock.Any()).Return(nil, errors.New("boom"))

	results := ExecuteClassifications(context.Background(), []orbit.Classifier{ok, failing}, 3, orbit.Options{}, NullProgressReporter{}, io.Discard)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "ok" || results[0].Err != nil || len(results[0].Representatives) != 2 {
		t.Errorf("results[0] = %+v", results[0])
	}

	var classErr apperrors.ClassificationError
	if !errors.As(results[1].Err, &classErr) || classErr.Strategy != "failing" {
		t.Errorf("results[1].Err = %v, want ClassificationError from failing", results[1].Err)
	}
}

func TestExecuteClassifications_RealStrategies(t *testing.T) {
	t.Parallel()
	classifiers := GetClassifiersToRun("all", orbit.NewDefaultFactory())
	results := ExecuteClassifications(context.Background(), classifiers, 7, orbit.Options{Workers: 2}, NullProgressReporter{}, io.Discard)

	p := &recordingPresenter{}
	if code := AnalyzeComparisonResults(results, PresentationOptions{N: 7}, p, p, io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if p.tableRows != 3 {
		t.Errorf("table rows = %d, want 3", p.tableRows)
	}
	if p.presented == nil || len(p.presented.Representatives) != 10 {
		t.Errorf("presented = %+v, want 10 representatives", p.presented)
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		results []ClassificationResult
		want    int
	}{
		{
			name: "all success",
			results: []ClassificationResult{
				{Name: "A", Representatives: reps("000", "010"), Duration: time.Millisecond},
				{Name: "B", Representatives: reps("000", "010"), Duration: 2 * time.Millisecond},
			},
			want: apperrors.ExitSuccess,
		},
		{
			name: "mismatch",
			results: []ClassificationResult{
				{Name: "A", Representatives: reps("000", "010"), Duration: time.Millisecond},
				{Name: "B", Representatives: reps("000", "011"), Duration: time.Millisecond},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "different count",
			results: []ClassificationResult{
				{Name: "A", Representatives: reps("000", "010"), Duration: time.Millisecond},
				{Name: "B", Representatives: reps("000"), Duration: time.Millisecond},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "all failure",
			results: []ClassificationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			want: apperrors.ExitErrorGeneric,
		},
		{
			name: "all timed out",
			results: []ClassificationResult{
				{Name: "A", Err: apperrors.ClassificationError{Strategy: "A", Cause: context.DeadlineExceeded}},
			},
			want: apperrors.ExitErrorTimeout,
		},
		{
			name: "mixed success and failure",
			results: []ClassificationResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Representatives: reps("000", "010"), Duration: time.Millisecond},
			},
			want: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &recordingPresenter{}
			if got := AnalyzeComparisonResults(tt.results, PresentationOptions{}, p, p, io.Discard); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
			if tt.want == apperrors.ExitSuccess && (p.presented == nil || p.presented.Err != nil) {
				t.Errorf("presented = %+v, want the first valid result", p.presented)
			}
		})
	}
}

func TestAnalyzeComparisonResults_SortsSuccessFirst(t *testing.T) {
	t.Parallel()
	results := []ClassificationResult{
		{Name: "failed", Err: errors.New("fail")},
		{Name: "slow", Representatives: reps("0"), Duration: time.Second},
		{Name: "fast", Representatives: reps("0"), Duration: time.Millisecond},
	}
	p := &recordingPresenter{}
	AnalyzeComparisonResults(results, PresentationOptions{}, p, p, io.Discard)

	want := []string{"fast", "slow", "failed"}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Name, name)
		}
	}
	if p.presented.Name != "fast" {
		t.Errorf("presented %s, want fast", p.presented.Name)
	}
}

func TestGetClassifiersToRun(t *testing.T) {
	t.Parallel()
	factory := orbit.NewDefaultFactory()

	if got := GetClassifiersToRun("memo", factory); len(got) != 1 || got[0].Name() != (orbit.Memoized{}).Name() {
		t.Errorf("GetClassifiersToRun(memo) = %v", got)
	}
	all := GetClassifiersToRun("all", factory)
	if len(all) != 3 {
		t.Fatalf("GetClassifiersToRun(all) returned %d classifiers, want 3", len(all))
	}
	if all[0].Name() != (orbit.Memoized{}).Name() || all[2].Name() != (orbit.Parallel{}).Name() {
		t.Errorf("classifiers are not in sorted registry order: %s, %s, %s", all[0].Name(), all[1].Name(), all[2].Name())
	}
	if got := GetClassifiersToRun("quantum", factory); got != nil {
		t.Errorf("GetClassifiersToRun(quantum) = %v, want nil", got)
	}
}

func TestSameRepresentatives(t *testing.T) {
	t.Parallel()
	if !SameRepresentatives(nil, nil) {
		t.Error("nil slices should be equal")
	}
	if !SameRepresentatives(reps("01", "11"), reps("01", "11")) {
		t.Error("identical slices should be equal")
	}
	if SameRepresentatives(reps("01", "11"), reps("11", "01")) {
		t.Error("order should matter")
	}
}
