// Package money converts between the peso display representation used on the
// cash flow statement forms ("₱12,345.67") and decimal values used for
// arithmetic.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix applied by Format.
const Symbol = "₱"

// Parse extracts a decimal value from a formatted amount string.
// Every rune except digits, '.' and '-' is stripped first, so inputs like
// "₱1,234.50", "1234.5" and " 1,234 " all parse to the same value.
// Anything that still fails to parse degrades to zero rather than an error:
// a corrupt or partially typed field must never break a totals calculation.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(numericPrefix(b.String()))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the longest leading substring that is still a valid
// decimal literal: one optional leading '-', at most one '.'. This mirrors
// how the forms were historically parsed, where trailing garbage was ignored
// instead of invalidating the whole field.
func numericPrefix(s string) string {
	seenDot := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '-':
			if i != 0 {
				return s[:i]
			}
		case '.':
			if seenDot {
				return s[:i]
			}
			seenDot = true
		}
	}
	return s
}

// Round2 rounds half-up to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders a value as a display amount: "₱" prefix, comma thousands
// grouping, exactly two fraction digits. A zero value formats to the empty
// string so untouched form fields stay blank instead of showing "₱0.00".
func Format(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}

	fixed := Round2(d).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString(Symbol)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
