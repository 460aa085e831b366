package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go runtime allocator.
type MemorySnapshot struct {
	HeapAlloc   uint64
	TotalAlloc  uint64
	Sys         uint64
	NumGC       uint32
	HeapObjects uint64
}

// MemoryDelta is the allocator activity between two snapshots.
type MemoryDelta struct {
	Allocated       uint64 // bytes allocated, including memory already collected
	MaxEndpointHeap uint64 // larger of the start and end HeapAlloc; not sampled during the run
	GCCycles        uint32
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a MemoryCollector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		TotalAlloc:  m.TotalAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// Measure runs fn between two snapshots and returns the difference.
func (mc *MemoryCollector) Measure(fn func()) MemoryDelta {
	before := mc.Snapshot()
	fn()
	return Delta(before, mc.Snapshot())
}

// Delta computes the activity between before and after.
func Delta(before, after MemorySnapshot) MemoryDelta {
	d := MemoryDelta{MaxEndpointHeap: max(before.HeapAlloc, after.HeapAlloc)}
	if after.TotalAlloc > before.TotalAlloc {
		d.Allocated = after.TotalAlloc - before.TotalAlloc
	}
	if after.NumGC > before.NumGC {
		d.GCCycles = after.NumGC - before.NumGC
	}
	return d
}
