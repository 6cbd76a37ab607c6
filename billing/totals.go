// Package billing holds the pure rules shared by OPD and pathology bills:
// totals aggregation, payment status derivation and invoice numbering.
package billing

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from a bill's due and paid amounts.
type PaymentStatus string

const (
	StatusDue     PaymentStatus = "due"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// MoneyPlaces is the precision of every stored monetary amount.
const MoneyPlaces = 2

// Line is anything that contributes a priced amount to a bill.
type Line interface {
	LineTotal() decimal.Decimal
}

// Totals is the result of aggregating a bill.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Due      decimal.Decimal
	Status   PaymentStatus
}

// Recompute aggregates the current line items of a bill together with its
// discount and paid amount. It is re-run from scratch on every save.
func Recompute[L Line](lines []L, discount, paid decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = subtotal.Round(MoneyPlaces)
	discount = discount.Round(MoneyPlaces)
	paid = paid.Round(MoneyPlaces)

	total := clampZero(subtotal.Sub(discount))
	due := clampZero(total.Sub(paid))

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Paid:     paid,
		Due:      due,
		Status:   StatusFor(due, paid),
	}
}

// StatusFor applies the three-way payment rule. A bill with nothing due is
// paid even when nothing was paid against it.
func StatusFor(due, paid decimal.Decimal) PaymentStatus {
	switch {
	case due.IsZero():
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusDue
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
