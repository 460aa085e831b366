package orbit

// Per-configuration working-set costs of each strategy, in bytes.
const (
	memoBytesPerConfig     = 4  // owner table entry (int32)
	parallelBytesPerConfig = 5  // key (uint32) + size (uint8)
	naiveBytesPerConfig    = 16 // every configuration is stored once as an orbit member
)

// EstimateMemory returns the approximate working set, in bytes, of running
// the named strategy on a universe of size n. Unknown names and out-of-range
// n yield 0.
func EstimateMemory(n int, strategy string) uint64 {
	if ValidateN(n) != nil {
		return 0
	}
	var perConfig uint64
	switch strategy {
	case "memo":
		perConfig = memoBytesPerConfig
	case "parallel":
		perConfig = parallelBytesPerConfig
	case "naive":
		perConfig = naiveBytesPerConfig
	default:
		return 0
	}
	return perConfig * universe(n)
}
