package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSpokes renders spoke indices as a compact comma-separated list.
func FormatSpokes(spokes []int) string {
	parts := make([]string, len(spokes))
	for i, s := range spokes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// FormatRing draws the 2N spoke ring of a wheel as a single line, marking the
// active spokes with on and the others with off.
//
// Parameters:
//   - spokes: The active spoke indices (each in 0..2n-1).
//   - n: The number of slots.
//   - on, off: The runes used for active and inactive positions.
//
// Returns:
//   - string: A string of 2n runes.
func FormatRing(spokes []int, n int, on, off rune) string {
	active := make([]bool, 2*n)
	for _, s := range spokes {
		if s >= 0 && s < len(active) {
			active[s] = true
		}
	}
	var sb strings.Builder
	for _, a := range active {
		if a {
			sb.WriteRune(on)
		} else {
			sb.WriteRune(off)
		}
	}
	return sb.String()
}

// FormatBytes renders a byte count with binary units, e.g. "512 B", "1.5 KiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
