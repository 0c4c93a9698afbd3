package models

import "github.com/shopspring/decimal"

// Money converts a float amount into a decimal for exact arithmetic
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Qty converts an item quantity into a decimal multiplier
func Qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
