package config

import (
	"fmt"
	"strconv"
	"strings"
)

var memoryUnits = []struct {
	suffix string
	factor uint64
}{
	{"KiB", 1 << 10},
	{"MiB", 1 << 20},
	{"GiB", 1 << 30},
	{"KB", 1000},
	{"MB", 1000 * 1000},
	{"GB", 1000 * 1000 * 1000},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"G", 1 << 30},
	{"B", 1},
}

// ParseMemoryLimit parses a size such as "512", "64MiB", "2G" or "1.5GB"
// into bytes.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	factor := uint64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(strings.ToUpper(s), strings.ToUpper(u.suffix)) {
			factor = u.factor
			s = strings.TrimSpace(s[:len(s)-len(u.suffix)])
			break
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return uint64(value * float64(factor)), nil
}
