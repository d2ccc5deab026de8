package number

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrOutOfRange amount does not fit in ledger minor units
var ErrOutOfRange = errors.New("amount out of range")

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Decimal parse v, zero if malformed
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromMinor ledger minor units to a display amount
func FromMinor(amount int64, decimals int32) decimal.Decimal {
	return decimal.New(amount, -decimals)
}

// ToMinor display amount to ledger minor units, extra precision is truncated
func ToMinor(d decimal.Decimal, decimals int32) (int64, error) {
	minor := d.Shift(decimals).Truncate(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, ErrOutOfRange
	}

	return minor.IntPart(), nil
}
