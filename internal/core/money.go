// Package core provides the domain types and money conversion utilities.
//
// All currency values are stored as integer cents; decimal values only exist
// at the boundary with callers. Every store routes amounts through this codec
// so that no floating-point drift can leak into stored values.
package core

import "github.com/shopspring/decimal"

// ToCents converts a decimal currency value to integer cents.
//
// The third and following decimal places are rounded half away from zero, so
// ToCents(1.005) == 101 and ToCents(-1.005) == -101. The result is exact for
// any value with at most two fractional digits.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer cents back to an exact decimal value.
// No rounding takes place; FromCents(ToCents(v)) == v for any two-digit v.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCentsPtr is the optional-value variant of ToCents; nil passes through.
func ToCentsPtr(d *decimal.Decimal) *int64 {
	if d == nil {
		return nil
	}
	cents := ToCents(*d)
	return &cents
}

// FromCentsPtr is the optional-value variant of FromCents; nil passes through.
func FromCentsPtr(cents *int64) *decimal.Decimal {
	if cents == nil {
		return nil
	}
	d := FromCents(*cents)
	return &d
}
