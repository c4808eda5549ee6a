package domain

import (
	"github.com/shopspring/decimal"
)

// Amount is a fixed-point money value.
type Amount = decimal.Decimal

// AmountPrecision is the number of fractional digits kept for every amount.
const AmountPrecision int32 = 4

// MaxAmount is the largest magnitude a balance accumulator may hold.
var MaxAmount = decimal.RequireFromString("79228162514264337593543950335")

// NormalizeAmount rounds amount to AmountPrecision digits, half away from zero.
func NormalizeAmount(amount Amount) Amount {
	return amount.Round(AmountPrecision)
}

// checkedAdd returns a+b, or ErrOverflow when the result leaves the representable range.
func checkedAdd(a, b Amount) (Amount, error) {
	sum := a.Add(b)
	if sum.Abs().GreaterThan(MaxAmount) {
		return a, ErrOverflow
	}
	return sum, nil
}
