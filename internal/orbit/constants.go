package orbit

const (
	// MaxN is the largest supported universe size. The universe holds 2^N
	// configurations; the memo and parallel strategies keep one entry per
	// configuration in memory.
	MaxN = 24

	// DefaultClassifier is the strategy used by Classify.
	DefaultClassifier = "memo"

	// checkInterval is the number of configurations processed between two
	// context checks and progress reports.
	checkInterval = 1 << 10

	// minChunkSize is the smallest slice of the universe handed to a
	// parallel worker.
	minChunkSize = 1 << 8
)
