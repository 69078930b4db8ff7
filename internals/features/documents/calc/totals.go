// Package calc holds the derived-field arithmetic shared by every document:
// line-item totals, grade bands, GPA and result-sheet ranking.
package calc

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
	",", "", "৳", "", "Tk.", "", "Tk", "", "tk", "", " ", "",
)

// Amounts longer than maxAmountLen, or written with an exponent, parse as zero.
const maxAmountLen = 30

var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ParseAmount reads a user-typed amount. Bengali digits, thousands
// separators and taka marks are accepted; anything unparsable, including
// exponent notation, is zero.
func ParseAmount(s string) decimal.Decimal {
	s = amountReplacer.Replace(strings.TrimSpace(s))
	if s == "" || len(s) > maxAmountLen || !plainDecimal.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNumber is ParseAmount as a float.
func ParseNumber(s string) float64 {
	f, _ := ParseAmount(s).Float64()
	return f
}

// Sum adds parsed amounts.
func Sum(values []string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(ParseAmount(v))
	}
	return total
}

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
}

// ComputeTotals: subtotal = Σ earnings, deductions = Σ deductions,
// net = subtotal - deductions.
func ComputeTotals(earnings, deductions []string) Totals {
	sub := Sum(earnings)
	ded := Sum(deductions)
	return Totals{
		Subtotal:   toFloat(sub),
		Deductions: toFloat(ded),
		Net:        toFloat(sub.Sub(ded)),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// FormatAmount renders an amount with two decimals and thousands separators.
func FormatAmount(f float64) string {
	s := decimal.NewFromFloat(f).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
