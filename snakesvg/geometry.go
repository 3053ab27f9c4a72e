package snakesvg

import (
	"fmt"
	"math"
	"strconv"
)

// Lerp interpolates between a (k=0) and b (k=1).
func Lerp(k, a, b float64) float64 {
	return (1-k)*a + k*b
}

// Percent renders a fraction of a loop as a keyframe label, e.g. 0.5 → "50.00".
// The value is rounded to two decimals, not truncated; exact halfway values
// round away from zero (1/32 → "3.13").
func Percent(x float64) string {
	return fixed2(x * 100)
}

// fixed2 formats v with two decimals. FormatFloat already rounds the exact
// binary value correctly except on ties, where it picks the even digit. A
// double sits exactly halfway between two hundredths only when it is an odd
// multiple of 1/8, and v*8 is exact, so ties are detected without error.
func fixed2(v float64) string {
	if a := math.Abs(v); a < 1<<50 {
		n := a * 8
		if n == math.Trunc(n) && math.Mod(n, 2) == 1 {
			// n/8 in hundredths is 12.5n; round the half up.
			h := (25*int64(n) + 1) / 2
			s := strconv.FormatInt(h/100, 10) + "." + fmt.Sprintf("%02d", h%100)
			if v < 0 {
				s = "-" + s
			}
			return s
		}
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatNumber writes v in its shortest round-trip form ("18", "1.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
