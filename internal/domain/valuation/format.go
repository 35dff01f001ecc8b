package valuation

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds x to n decimal places using the correctly rounded decimal
// expansion of x, so ties resolve the way the stored binary value dictates
// (2.675 → 2.67) rather than by naive scaling.
func Round(x float64, n int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', n, 64), 64)
	if err != nil {
		return x
	}
	// avoid "-0" leaking into JSON
	if v == 0 {
		return 0
	}
	return v
}

// FormatNumber renders x as the shortest decimal that round-trips, always
// carrying a fractional part: 4.5 → "4.5", 5 → "5.0", 4.86 → "4.86".
func FormatNumber(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// percent truncates |adj-1|·100 toward zero. The subtraction is done in
// float64 so 1.2 yields 19 and 0.9 yields 9.
func percent(adj float64) int {
	return int(math.Trunc(math.Abs((adj - 1) * 100)))
}

//Personal.AI order the ending
