package repositories

import (
	"HospitalMgmt/billing"
	"context"

	"gorm.io/gorm"
)

// The conflicting row stays locked until the enclosing transaction ends, so
// allocations for one month serialize while other months proceed.
const incrementSequenceSQL = `INSERT INTO invoice_sequences (year_month, last_value) VALUES (?, 1)
ON CONFLICT (year_month) DO UPDATE SET last_value = invoice_sequences.last_value + 1
RETURNING last_value`

type sequenceCounter struct {
	tx *gorm.DB
}

// NewSequenceCounter returns a billing.Counter bound to tx. The increment only
// becomes visible when tx commits.
func NewSequenceCounter(tx *gorm.DB) billing.Counter {
	return &sequenceCounter{tx: tx}
}

func (c *sequenceCounter) Increment(ctx context.Context, key string) (int64, error) {
	var value int64
	if err := c.tx.WithContext(ctx).Raw(incrementSequenceSQL, key).Scan(&value).Error; err != nil {
		return 0, translateError(err)
	}
	return value, nil
}
