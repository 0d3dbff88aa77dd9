// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// LineTotal computes quantity * unitPrice with a percent discount applied,
// rounded to 2 decimal places.
func LineTotal(quantity int64, unitPrice, discountPct Money) Money {
	gross := unitPrice.Mul(decimal.NewFromInt(quantity))
	if discountPct.IsZero() {
		return gross.Round(2)
	}
	factor := decimal.NewFromInt(100).Sub(discountPct).Div(decimal.NewFromInt(100))
	return gross.Mul(factor).Round(2)
}
