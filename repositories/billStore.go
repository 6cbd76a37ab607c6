package repositories

import (
	"HospitalMgmt/billing"
	"HospitalMgmt/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// billCacheExpiry bounds how long a bill read that raced a write can stay cached.
const (
	billCacheExpiry = 5 * time.Minute
)

// billColumns are the BillingBase columns rewritten on every bill save.
// invoice_number is absent: it is assigned once at creation.
var billColumns = []string{
	"patient_id", "subtotal", "discount", "total_amount", "paid_amount",
	"due_amount", "payment_status", "billing_date",
}

// assignInvoiceNumber allocates an invoice number for a bill that has none,
// inside tx, so a rolled back creation never advances the counter.
func assignInvoiceNumber(ctx context.Context, tx *gorm.DB, base *models.BillingBase) (bool, error) {
	if base.InvoiceNumber != "" {
		return false, nil
	}
	number, err := billing.NextInvoiceNumber(ctx, NewSequenceCounter(tx), base.BillingTime())
	if err != nil {
		return false, err
	}
	base.InvoiceNumber = number
	return true, nil
}

// lockBill loads a bill row with FOR UPDATE so concurrent edits of the same
// bill serialize their read-recompute-write.
func lockBill(tx *gorm.DB, dest interface{}, id uint) error {
	return translateError(tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error)
}

// removedIDs returns the ids in before that are not kept.
func removedIDs(before []uint, kept map[uint]bool) []uint {
	var removed []uint
	for _, id := range before {
		if !kept[id] {
			removed = append(removed, id)
		}
	}
	return removed
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
