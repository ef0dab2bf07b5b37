package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatComma renders v with thousands separators and no trailing zeros,
// e.g. 12345.5 -> "12,345.5".
func FormatComma(v float64) string {
	return humanize.Commaf(v)
}

// FormatFixed renders v with thousands separators and exactly decimals
// fractional digits.
func FormatFixed(v float64, decimals int) string {
	format := "#,###."
	if decimals > 0 {
		format += strings.Repeat("#", decimals)
	}
	return humanize.FormatFloat(format, v)
}

// precisionFixed is the number of decimals needed to distinguish multiples
// of step.
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	return max(0, -exponent(step))
}

// exponent returns the decimal exponent of v as printed in scientific
// notation.
func exponent(v float64) int {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	e, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	return e
}

// FormatSI renders v with two significant digits and an SI prefix,
// e.g. 1500 -> "1.5k", 20000 -> "20k", 0 -> "0.0".
func FormatSI(v float64) string {
	if v == 0 {
		return "0.0"
	}
	sign := ""
	if v < 0 {
		sign = "−"
		v = -v
	}

	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'e', 1, 64), 64)
	value, prefix := humanize.ComputeSI(rounded)

	intDigits := len(strconv.Itoa(int(math.Floor(value + 1e-9))))
	decimals := max(0, 2-intDigits)
	return sign + strconv.FormatFloat(value, 'f', decimals, 64) + prefix
}
