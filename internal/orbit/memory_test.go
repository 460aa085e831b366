package orbit

import "testing"

func TestEstimateMemory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n        int
		strategy string
		want     uint64
	}{
		{10, "memo", 4 << 10},
		{10, "parallel", 5 << 10},
		{10, "naive", 16 << 10},
		{MaxN, "memo", 64 << 20},
		{0, "memo", 0},
		{10, "quantum", 0},
	}
	for _, tt := range tests {
		if got := EstimateMemory(tt.n, tt.strategy); got != tt.want {
			t.Errorf("EstimateMemory(%d, %q) = %d, want %d", tt.n, tt.strategy, got, tt.want)
		}
	}
}
