package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrorToken is the display text shown while the engine is in the error state.
const ErrorToken = "Error"

const (
	expUpperBound = 1e10
	expLowerBound = 1e-6
	expDigits     = 6
)

// FormatNumber renders v for display. Values with magnitude >= 1e10, or
// nonzero values with magnitude < 1e-6, use exponential notation with six
// fractional digits; everything else is plain decimal without trailing zeros.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorToken
	}
	if needsExponent(v) {
		return trimExponent(strconv.FormatFloat(v, 'e', expDigits, 64))
	}
	return NumberString(v)
}

// FormatDisplay renders the raw display text held by the engine. Text that is
// still being typed (e.g. "12." or "0.50") is returned unchanged unless its
// value falls in the exponential range.
func FormatDisplay(text string, failed bool) string {
	if failed || text == ErrorToken {
		return ErrorToken
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return text
	}
	if math.IsInf(v, 0) {
		return NumberString(v)
	}
	if needsExponent(v) {
		return trimExponent(strconv.FormatFloat(v, 'e', expDigits, 64))
	}
	return text
}

// NumberString renders v the way ECMAScript's String(number) does: the
// shortest round-trip digits, plain decimal for 1e-6 <= |v| < 1e21 and
// exponential otherwise, with an unpadded exponent. Negative zero renders
// as "0".
func NumberString(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func needsExponent(v float64) bool {
	abs := math.Abs(v)
	return abs >= expUpperBound || (abs < expLowerBound && v != 0)
}

// trimExponent rewrites Go's two-digit exponent ("5e-07") to the unpadded
// form ("5e-7").
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}
