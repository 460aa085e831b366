package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/orbitcalc/internal/cli"
	"github.com/agbru/orbitcalc/internal/config"
	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/logging"
	"github.com/agbru/orbitcalc/internal/metrics"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
)

// runCalculate orchestrates the execution of the CLI classification command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	classifiers := orchestration.GetClassifiersToRun(a.Config.Algo, a.Factory)

	plain := a.Config.Quiet || a.Config.JSON
	if !plain {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(classifiers, a.Config, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if plain {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	var results []orchestration.ClassificationResult
	delta := metrics.NewMemoryCollector().Measure(func() {
		results = orchestration.ExecuteClassifications(ctx, classifiers, a.Config.N, a.Config.ToOrbitOptions(), progressReporter, progressOut)
	})

	presOpts := orchestration.PresentationOptions{
		N:       a.Config.N,
		Algo:    a.Config.Algo,
		Action:  a.Config.Action,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		JSON:       a.Config.JSON,
	}

	var code int
	if len(results) == 1 {
		code = a.presentSingle(results[0], presOpts, outputCfg, out)
	} else {
		code = a.presentComparison(results, presOpts, outputCfg, out)
	}

	if code == apperrors.ExitSuccess && a.Config.Details && !plain {
		cli.DisplayMemoryStats(delta, estimateMemory(a.Config), out)
	}
	return code
}

// presentSingle reports the outcome of a single strategy.
func (a *Application) presentSingle(res orchestration.ClassificationResult, opts orchestration.PresentationOptions, outputCfg cli.OutputConfig, out io.Writer) int {
	if res.Err != nil {
		err := res.Err
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: res.Name, Limit: a.Config.Timeout}
		}
		return apperrors.HandleClassificationError(err, res.Duration, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("classification complete",
		logging.String("strategy", res.Name),
		logging.Int("orbits", len(res.Representatives)),
		logging.Duration("duration", res.Duration),
	)
	if err := cli.DisplayResultWithConfig(out, res, opts, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// presentComparison cross-checks every strategy and reports the agreed
// representatives.
func (a *Application) presentComparison(results []orchestration.ClassificationResult, opts orchestration.PresentationOptions, outputCfg cli.OutputConfig, out io.Writer) int {
	if outputCfg.Quiet || outputCfg.JSON {
		best := findBestResult(results)
		if best == nil {
			return a.presentSingle(results[0], opts, outputCfg, out)
		}
		for _, res := range results {
			if res.Err == nil && !orchestration.SameRepresentatives(res.Representatives, best.Representatives) {
				fmt.Fprintln(a.ErrWriter, "The strategies disagree on the orbit representatives.")
				return apperrors.ExitErrorMismatch
			}
		}
		return a.presentSingle(*best, opts, outputCfg, out)
	}

	code := orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
	if code != apperrors.ExitSuccess || outputCfg.OutputFile == "" {
		return code
	}
	if best := findBestResult(results); best != nil {
		if err := cli.WriteResultToFile(*best, opts, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\nReport saved to: %s\n", outputCfg.OutputFile)
	}
	return code
}

// validateMemoryBudget checks that the estimated working set fits within
// the configured limit.
func (a *Application) validateMemoryBudget(out io.Writer) int {
	limit, err := config.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	est := estimateMemory(a.Config)
	if est > limit {
		err := apperrors.MemoryError{Requested: est, Available: limit, Limit: limit}
		fmt.Fprintf(a.ErrWriter, "Estimated working set %s exceeds limit %s: %v\n",
			format.FormatBytes(est), format.FormatBytes(limit), err)
		return apperrors.ExitCodeFor(err)
	}
	if !a.Config.Quiet && !a.Config.JSON {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n", format.FormatBytes(est), format.FormatBytes(limit))
	}
	return apperrors.ExitSuccess
}

// estimateMemory returns the working set of the configured run. With "all"
// the strategies run concurrently, so their estimates add up.
func estimateMemory(cfg config.AppConfig) uint64 {
	if cfg.Algo != "all" {
		return orbit.EstimateMemory(cfg.N, cfg.Algo)
	}
	var total uint64
	for _, name := range []string{"memo", "naive", "parallel"} {
		total += orbit.EstimateMemory(cfg.N, name)
	}
	return total
}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.ClassificationResult) *orchestration.ClassificationResult {
	var best *orchestration.ClassificationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
