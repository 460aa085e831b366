package orbit

import (
	"context"

	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Memoized keeps a canonical-form cache mapping every classified
// configuration to the ordinal of its orbit. A configuration found in the
// cache already belongs to a discovered orbit and is skipped without
// computing its orbit again.
//
// Cost: O(2^N) action applications and one cache entry per configuration.
type Memoized struct{}

// Name implements Strategy.
func (Memoized) Name() string { return "Memoized (canonical-form cache)" }

// ClassifyCore implements Strategy.
func (Memoized) ClassifyCore(ctx context.Context, reporter progress.ProgressCallback, n int, opts Options) ([]Representative, error) {
	total := universe(n)
	// owner[v] is the ordinal of the orbit containing configuration v, 0 if
	// not yet classified. The slice is indexed by enumeration index, which is
	// the hash of a configuration of fixed width.
	owner := make([]int32, total)
	var reps []Representative

	for v := uint64(0); v < total; v++ {
		if v%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reporter(float64(v) / float64(total))
		}
		if owner[v] != 0 {
			continue
		}

		c := wheel.MustFromUint(n, v)
		o := wheel.OrbitOf(opts.Action, c)
		ordinal := len(reps) + 1
		for _, m := range o.Members() {
			owner[m.Uint64()] = int32(ordinal)
		}
		reps = append(reps, Representative{Ordinal: ordinal, Config: c, OrbitSize: o.Len()})
	}
	return reps, nil
}
