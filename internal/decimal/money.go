package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromString parses a fiscal monetary value. NF-e and CT-e amounts use a dot
// as decimal separator ("1500.00"); surrounding whitespace is ignored.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// RoundCents rounds to 2 places (BRL has cents)
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// EqualCents returns true if a and b are equal once rounded to cents
func EqualCents(a, b decimal.Decimal) bool {
	return RoundCents(a).Equal(RoundCents(b))
}

// FormatCents renders d with exactly 2 decimal places
func FormatCents(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
