package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per classifier. A larger
// buffer reduces dropped updates when the UI is slow to consume them.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/orbitcalc/internal/orchestration"

// ExecuteClassifications runs every classifier concurrently on the same
// universe and collects their results in input order.
//
// A failing classifier does not cancel the others: its error is recorded in
// its result slot. Each run is traced as a span named "classify".
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - classifiers: The classifiers to run.
//   - n: The universe size.
//   - opts: The options shared by every run.
//   - progressReporter: Displays progress (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []ClassificationResult: One result per classifier, in input order.
func ExecuteClassifications(ctx context.Context, classifiers []orbit.Classifier, n int, opts orbit.Options, progressReporter ProgressReporter, out io.Writer) []ClassificationResult {
	tracer := otel.Tracer(tracerName)
	results := make([]ClassificationResult, len(classifiers))
	progressChan := make(chan progress.ProgressUpdate, len(classifiers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(classifiers), out)

	var g errgroup.Group
	for i, c := range classifiers {
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "classify")
			defer span.End()
			span.SetAttributes(
				attribute.String("orbit.strategy", c.Name()),
				attribute.Int("orbit.n", n),
			)

			start := time.Now()
			reps, err := c.Classify(spanCtx, progressChan, i, n, opts)
			if err != nil {
				err = apperrors.ClassificationError{Strategy: c.Name(), Cause: err}
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetAttributes(attribute.Int("orbit.count", len(reps)))
			}
			results[i] = ClassificationResult{
				Name: c.Name(), Representatives: reps, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results by success and duration, presents
// the comparison table, and checks that every successful strategy returned
// the same representatives.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - opts: Presentation options for the final report.
//   - presenter: Formats the table and the report.
//   - errHandler: Reports the failure when no strategy succeeded.
//   - out: The writer for the summary.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the failure's exit code.
func AnalyzeComparisonResults(results []ClassificationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *ClassificationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the classification.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !SameRepresentatives(res.Representatives, firstValid.Representatives) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the orbit representatives.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// SameRepresentatives reports whether a and b list the same representatives
// in the same order.
func SameRepresentatives(a, b []orbit.Representative) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetClassifiersToRun resolves the --algo selection against the factory.
// "all" selects every registered strategy in sorted name order; an unknown
// name yields nil.
func GetClassifiersToRun(algo string, factory orbit.ClassifierFactory) []orbit.Classifier {
	if algo == "all" {
		names := factory.List()
		classifiers := make([]orbit.Classifier, 0, len(names))
		for _, name := range names {
			if c, err := factory.Get(name); err == nil {
				classifiers = append(classifiers, c)
			}
		}
		return classifiers
	}
	if c, err := factory.Get(algo); err == nil {
		return []orbit.Classifier{c}
	}
	return nil
}
