package orbit

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Parallel computes the orbit key of every configuration on a bounded pool of
// workers, then merges sequentially: configuration v is a representative
// exactly when it is the smallest index of its own orbit. Scanning v in
// ascending order therefore reproduces the first-seen order of the
// sequential strategies.
type Parallel struct{}

// Name implements Strategy.
func (Parallel) Name() string { return "Parallel (chunked, ordered merge)" }

// ClassifyCore implements Strategy.
func (Parallel) ClassifyCore(ctx context.Context, reporter progress.ProgressCallback, n int, opts Options) ([]Representative, error) {
	total := universe(n)
	keys := make([]uint32, total)
	sizes := make([]uint8, total)
	chunk := chunkSize(total, opts.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	var done atomic.Uint64

	for start := uint64(0); start < total; start += chunk {
		end := min(start+chunk, total)
		g.Go(func() error {
			for v := start; v < end; v++ {
				if (v-start)%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				o := wheel.OrbitOf(opts.Action, wheel.MustFromUint(n, v))
				keys[v] = uint32(o.Key().Uint64())
				sizes[v] = uint8(o.Len())
			}
			reporter(float64(done.Add(end-start)) / float64(total))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reps []Representative
	for v := uint64(0); v < total; v++ {
		if uint64(keys[v]) != v {
			continue
		}
		reps = append(reps, Representative{
			Ordinal:   len(reps) + 1,
			Config:    wheel.MustFromUint(n, v),
			OrbitSize: int(sizes[v]),
		})
	}
	return reps, nil
}

// chunkSize splits total into about four chunks per worker, never smaller
// than minChunkSize.
func chunkSize(total uint64, workers int) uint64 {
	if workers < 1 {
		workers = 1
	}
	size := total / uint64(workers*4)
	if size < minChunkSize {
		size = minChunkSize
	}
	return size
}
