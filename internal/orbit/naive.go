package orbit

import (
	"context"

	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Naive computes the full orbit of every configuration and keeps it only when
// no recorded orbit is set-equal to it.
//
// Cost: O(2^N · N) action applications plus O(2^N · orbits · N²) for the
// orbit comparisons. Intended as the reference strategy for small N.
type Naive struct{}

// Name implements Strategy.
func (Naive) Name() string { return "Naive (set-equality dedup)" }

// ClassifyCore implements Strategy.
func (Naive) ClassifyCore(ctx context.Context, reporter progress.ProgressCallback, n int, opts Options) ([]Representative, error) {
	total := universe(n)
	var (
		seen []wheel.Orbit
		reps []Representative
	)

	for v := uint64(0); v < total; v++ {
		if v%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reporter(float64(v) / float64(total))
		}

		c := wheel.MustFromUint(n, v)
		o := wheel.OrbitOf(opts.Action, c)
		if containsOrbit(seen, o) {
			continue
		}
		seen = append(seen, o)
		reps = append(reps, Representative{Ordinal: len(reps) + 1, Config: c, OrbitSize: o.Len()})
	}
	return reps, nil
}

func containsOrbit(seen []wheel.Orbit, o wheel.Orbit) bool {
	for _, s := range seen {
		if s.Equal(o) {
			return true
		}
	}
	return false
}
