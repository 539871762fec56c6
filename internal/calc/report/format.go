package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money renders whole pounds with thousand separators and the sign between
// the currency mark and the digits, e.g. £-249,800.
func Money(v float64) string {
	r := math.Round(v)
	if r < 0 {
		return "£-" + groupThousands(-r)
	}
	return "£" + groupThousands(r)
}

// Number renders a whole number with thousand separators.
func Number(v float64) string {
	r := math.Round(v)
	if r < 0 {
		return "-" + groupThousands(-r)
	}
	return groupThousands(r)
}

func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Payback caps the displayed payback at the ten-year analysis horizon.
func Payback(years float64) string {
	if math.IsInf(years, 1) || years > 10 {
		return ">10 years"
	}
	return fmt.Sprintf("%.1f years", years)
}

func groupThousands(r float64) string {
	s := strconv.FormatFloat(r, 'f', 0, 64)
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
