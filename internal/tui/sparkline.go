package tui

// sparklineChars maps levels 0..7 to block elements.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer of samples.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer returns a buffer holding at most capacity samples.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push appends v, overwriting the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of samples held.
func (r *RingBuffer) Len() int { return r.count }

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range r.count {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Reset discards every sample.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline renders values in 0..100 as block elements. Values
// outside the range are clamped.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100*7), 7)]
	}
	return string(runes)
}

// SizeProfile scales orbit sizes to 0..100 relative to the largest, for
// RenderSparkline.
func SizeProfile(sizes []int) []float64 {
	largest := 0
	for _, s := range sizes {
		largest = max(largest, s)
	}
	out := make([]float64, len(sizes))
	if largest == 0 {
		return out
	}
	for i, s := range sizes {
		out[i] = float64(s) * 100 / float64(largest)
	}
	return out
}
