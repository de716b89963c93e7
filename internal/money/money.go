// Package money converts between user-facing decimal amounts (dollars) and
// the integer minor currency units (cents) the provider API expects.
// Conversion happens once, at the facade boundary, and always by rounding.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Zero is decimal zero
var Zero = decimal.Zero

// FromDollars creates a decimal dollar amount from a float
func FromDollars(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// ParseDollars parses a dollar amount from a string
func ParseDollars(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// ToMinorUnits converts a dollar amount to integer cents, rounding to the
// nearest cent. 19.995 becomes 2000, not 1999.
func ToMinorUnits(dollars decimal.Decimal) int64 {
	return dollars.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts integer cents back to a dollar amount with two
// decimal places.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred).Round(2)
}

// HoursToMinorUnits prices a duration in hours at an hourly dollar rate and
// returns cents, rounding to the nearest cent.
func HoursToMinorUnits(hours, hourlyRate decimal.Decimal) int64 {
	return ToMinorUnits(hours.Mul(hourlyRate))
}

// IsPositive returns true if the amount is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// Sum sums a slice of minor-unit amounts
func Sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}
