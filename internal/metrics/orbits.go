package metrics

import (
	"sort"

	"github.com/agbru/orbitcalc/internal/orbit"
)

// SizeBucket counts the orbits of one size.
type SizeBucket struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// OrbitStats summarises the representatives returned for one universe.
type OrbitStats struct {
	N              int          `json:"n"`
	Orbits         int          `json:"orbits"`
	Configurations uint64       `json:"configurations"`
	Largest        int          `json:"largest"`
	Smallest       int          `json:"smallest"`
	Histogram      []SizeBucket `json:"histogram"`
}

// ComputeOrbitStats builds the statistics of reps for a universe of size n.
// Configurations sums the orbit sizes, so it equals 2^n for a complete
// classification.
func ComputeOrbitStats(n int, reps []orbit.Representative) OrbitStats {
	stats := OrbitStats{N: n, Orbits: len(reps)}
	counts := make(map[int]int)
	for i, r := range reps {
		stats.Configurations += uint64(r.OrbitSize)
		counts[r.OrbitSize]++
		if i == 0 || r.OrbitSize > stats.Largest {
			stats.Largest = r.OrbitSize
		}
		if i == 0 || r.OrbitSize < stats.Smallest {
			stats.Smallest = r.OrbitSize
		}
	}
	stats.Histogram = make([]SizeBucket, 0, len(counts))
	for size, count := range counts {
		stats.Histogram = append(stats.Histogram, SizeBucket{Size: size, Count: count})
	}
	sort.Slice(stats.Histogram, func(i, j int) bool {
		return stats.Histogram[i].Size > stats.Histogram[j].Size
	})
	return stats
}

// Complete reports whether the orbit sizes cover the whole universe.
func (s OrbitStats) Complete() bool {
	return s.N > 0 && s.N < 64 && s.Configurations == uint64(1)<<uint(s.N)
}
