package config

import "runtime"

// ApplyAdaptiveDefaults fills the settings left at their zero value with
// values estimated from the hardware. Explicit values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(runtime.NumCPU(), cfg.N)
	}
	return cfg
}

// EstimateOptimalWorkers picks a worker count for the parallel strategy.
// Small universes are classified faster by a single goroutine than by a
// fan-out, so the count grows with both the core count and n.
func EstimateOptimalWorkers(numCPU, n int) int {
	switch {
	case numCPU <= 1 || n <= 10:
		return 1
	case n <= 16:
		return min(numCPU, 4)
	default:
		return numCPU
	}
}
