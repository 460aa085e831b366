package format

import "strings"

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// FormatRoman returns the upper-case roman numeral for n.
// Values outside 1..3999 have no standard numeral and are returned empty.
//
// Parameters:
//   - n: The ordinal to convert.
//
// Returns:
//   - string: The numeral, e.g. "XIV" for 14.
func FormatRoman(n int) string {
	if n < 1 || n > 3999 {
		return ""
	}
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}
