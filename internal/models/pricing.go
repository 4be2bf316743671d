package models

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// LineTotal computes price * quantity minus the percentage discount.
// Only the discount amount is rounded (half-up, 2 decimal places); the
// subtotal itself is left exact so repeated additions cannot drift.
func LineTotal(price decimal.Decimal, quantity int, discountPercent decimal.Decimal) decimal.Decimal {
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	// subtotal * pct / 100, computed exactly via a shift before rounding.
	discount := subtotal.Mul(discountPercent).Shift(-2).Round(2)
	return subtotal.Sub(discount)
}

// NormalizeDiscount clamps a discount percentage into [0, 100].
// The zero value stands in for an absent discount.
func NormalizeDiscount(discountPercent decimal.Decimal) decimal.Decimal {
	if discountPercent.IsNegative() {
		return decimal.Zero
	}
	if discountPercent.GreaterThan(oneHundred) {
		return oneHundred
	}
	return discountPercent
}
