package calculator

import (
	"math"
	"strconv"
)

// Format renders n for a calculator display. Integral values drop their
// fractional part, other values use the shortest decimal that parses back
// to the same float. An empty Number formats as "0".
func Format(n Number) string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		if n.f == 0 {
			return "0"
		}
		if n.f == math.Trunc(n.f) {
			return strconv.FormatFloat(n.f, 'f', 0, 64)
		}
		return formatFloat(n.f)
	default:
		return "0"
	}
}

// formatFloat switches to exponent form below 1e-4 and from 1e16 up.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
