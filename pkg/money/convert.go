package money

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimals user entered amounts are rounded to.
const AmountPrecision = 3

// NormalizeAmount returns the absolute value of amount rounded to AmountPrecision decimals.
func NormalizeAmount(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Abs().Round(AmountPrecision)
}

// Convert multiplies amount by rate. No other conversion math is applied.
func Convert(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate))
}

// Display formats d with the given number of decimals.
// A negative value falls back to two decimals.
func Display(d decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 2
	}
	return d.StringFixed(int32(decimals))
}
