// Package format renders amounts and dates the way Indian business documents expect them:
// lakh/crore digit grouping, a rupee prefix and day-first dates.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes formatted currency amounts
const RupeeSymbol = "₹"

// FormatIndianNumber groups the integer part as 12,34,567 and keeps at most two
// decimals. Values whose integer part has more than three digits have their
// decimals truncated; shorter values are rounded.
func FormatIndianNumber(v decimal.Decimal) string {
	abs := v.Abs()
	intPart := abs.Truncate(0).String()

	if len(intPart) <= 3 {
		rounded := v.Round(2)
		if len(rounded.Abs().Truncate(0).String()) <= 3 {
			return rounded.String()
		}
		abs = rounded.Abs()
		intPart = abs.Truncate(0).String()
	}

	var decPart string
	if s := abs.String(); strings.Contains(s, ".") {
		decPart = s[strings.IndexByte(s, '.')+1:]
		if len(decPart) > 2 {
			decPart = decPart[:2]
		}
	}

	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupIndian(intPart))
	if decPart != "" {
		b.WriteByte('.')
		b.WriteString(decPart)
	}
	return b.String()
}

// FormatIndianFloat is FormatIndianNumber for float inputs; NaN and infinities render as "0".
func FormatIndianFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return FormatIndianNumber(decimal.NewFromFloat(f))
}

// FormatIndianNumberPtr renders nil as "0"
func FormatIndianNumberPtr(v *decimal.Decimal) string {
	if v == nil {
		return "0"
	}
	return FormatIndianNumber(*v)
}

// FormatIndianCurrency prefixes the grouped number with the rupee symbol
func FormatIndianCurrency(v decimal.Decimal) string {
	return RupeeSymbol + FormatIndianNumber(v)
}

// ParseIndianNumber reads a grouped amount such as "₹1,23,456.50". Unparseable
// input yields zero.
func ParseIndianNumber(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	cleaned = strings.TrimPrefix(cleaned, RupeeSymbol)
	if cleaned == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// groupIndian inserts commas into a run of digits: the last three digits form
// one group and the remaining digits are grouped in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, last := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(last)
	return b.String()
}
