// Package format rounds calculator output for display. Calculators never round;
// everything a user sees passes through here.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds v half away from zero to two decimal places
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Money renders v as dollars with thousands separators: 1234.5 → "$1,234.50", -23.64 → "-$23.64"
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	out := groupThousands(whole) + "." + frac
	if neg {
		return "-$" + out
	}
	return "$" + out
}

// Percent renders a probability (0-1) as a percentage with one decimal: 0.684 → "68.4%"
func Percent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "-"
	}
	return decimal.NewFromFloat(p).Shift(2).StringFixed(1) + "%"
}

// Margin renders a value already expressed in percent: 25 → "25.00%"
func Margin(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "-"
	}
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

// Signed renders v with an explicit sign and the given number of places: 0.142 → "+0.142"
func Signed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsZero() {
		return d.Abs().StringFixed(places)
	}
	s := d.StringFixed(places)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

// Fixed renders v with exactly places decimals: 48.5 → "48.5"
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Spread renders a point spread the way books print it; a zero spread is "PK"
func Spread(v float64) string {
	if v == 0 {
		return "PK"
	}
	return Signed(v, 1)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
