//go:generate mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks

package orbit

import (
	"context"
	"fmt"
	"runtime"

	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Options configures a classification run.
type Options struct {
	// Action is the symmetry generator. Nil selects wheel.TwistedRotation.
	Action wheel.Action
	// Workers bounds the goroutines used by the parallel strategy.
	// Zero or negative selects runtime.GOMAXPROCS(0).
	Workers int
}

// normalize fills the zero-valued fields of opts with their defaults.
func (o Options) normalize() Options {
	if o.Action == nil {
		o.Action = wheel.TwistedRotation{}
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Classifier is the public interface of an orbit classifier.
type Classifier interface {
	// Classify enumerates the 2^n configurations and returns one
	// representative per orbit in discovery order. Progress is sent on
	// progressChan tagged with index; progressChan may be nil.
	Classify(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n int, opts Options) ([]Representative, error)

	// Name returns a human-readable name of the strategy.
	Name() string
}

// Strategy is the algorithm behind a Classifier. ClassifyCore receives a
// validated n and normalized options.
type Strategy interface {
	ClassifyCore(ctx context.Context, reporter progress.ProgressCallback, n int, opts Options) ([]Representative, error)
	Name() string
}

// OrbitClassifier adapts a Strategy to the Classifier interface. It validates
// the input, fills option defaults and bridges progress to a channel.
type OrbitClassifier struct {
	strategy Strategy
}

// NewClassifier wraps s as a Classifier.
func NewClassifier(s Strategy) Classifier {
	return &OrbitClassifier{strategy: s}
}

// Name returns the strategy name.
func (c *OrbitClassifier) Name() string {
	return c.strategy.Name()
}

// Classify implements Classifier.
func (c *OrbitClassifier) Classify(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n int, opts Options) ([]Representative, error) {
	if err := ValidateN(n); err != nil {
		return nil, err
	}
	reporter := progress.Throttle(progress.NewChannelCallback(progressChan, index))
	reporter(0)
	reps, err := c.strategy.ClassifyCore(ctx, reporter, n, opts.normalize())
	if err != nil {
		return nil, err
	}
	reporter(1.0)
	return reps, nil
}

// ValidateN checks the universe size precondition.
func ValidateN(n int) error {
	if n < 1 || n > MaxN {
		return fmt.Errorf("%w: n=%d, want 1..%d", ErrInvalidArgument, n, MaxN)
	}
	return nil
}

// Classify returns the canonical representatives of the twisted-rotation
// orbits of the n-bit universe, in discovery order.
func Classify(n int) ([]Representative, error) {
	return NewClassifier(&Memoized{}).Classify(context.Background(), nil, 0, n, Options{})
}

// universe returns the number of configurations of width n.
func universe(n int) uint64 {
	return uint64(1) << uint(n)
}
