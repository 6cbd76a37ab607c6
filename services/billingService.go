package services

import (
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"HospitalMgmt/repositories"
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	maxRetries = 3
	retryDelay = 50 * time.Millisecond
)

var (
	ErrUnknownCatalogEntry  = errors.New("does not exist")
	ErrInactiveCatalogEntry = errors.New("is not active")
)

// CatalogLookup resolves the catalog entry a line item points at.
type CatalogLookup[T any] interface {
	GetByID(ctx context.Context, id uint) (*T, error)
}

// withRetry reruns op while the store reports a serialization conflict.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = op(); !errors.Is(err, repositories.ErrRetryable) {
			return err
		}
		logger.Log.WithError(err).WithField("attempt", attempt).Warn("Retrying billing write")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay * time.Duration(attempt)):
		}
	}
	return err
}

// today is the calendar date of now, at UTC midnight.
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseBillingDate returns the date in s, or ok=false when s is empty.
// s has already passed validation.
func parseBillingDate(s string) (date datatypes.Date, ok bool) {
	if s == "" {
		return datatypes.Date{}, false
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return datatypes.Date{}, false
	}
	return datatypes.Date(t), true
}

// newBillingBase starts a bill from its input. Totals are left to the caller.
func newBillingBase(in models.BillInput, now time.Time, createdBy *int64) models.BillingBase {
	base := models.BillingBase{
		PatientID:   in.PatientID,
		Discount:    in.Discount,
		PaidAmount:  in.PaidAmount,
		BillingDate: datatypes.Date(today(now)),
		CreatedByID: createdBy,
	}
	if date, ok := parseBillingDate(in.BillingDate); ok {
		base.BillingDate = date
	}
	return base
}

// applyBillInput copies editable bill fields. The invoice number and the
// existing billing date survive when the input leaves the date empty.
func applyBillInput(base *models.BillingBase, in models.BillInput) {
	base.PatientID = in.PatientID
	base.Discount = in.Discount
	base.PaidAmount = in.PaidAmount
	if date, ok := parseBillingDate(in.BillingDate); ok {
		base.BillingDate = date
	}
}

// resolveEntry loads a catalog entry for a line item, mapping a missing entry
// to a field error.
func resolveEntry[T any](ctx context.Context, lookup CatalogLookup[T], id uint) (*T, error) {
	entry, err := lookup.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, validation.Errors{"catalog_id": ErrUnknownCatalogEntry}
	}
	return entry, err
}

func inactiveEntry() error {
	return validation.Errors{"catalog_id": ErrInactiveCatalogEntry}
}

// capturedPrice is the unit price a new line stores: the explicit price when
// given, else the catalog price at this moment.
func capturedPrice(in models.LineItemInput, catalogPrice decimal.Decimal) decimal.Decimal {
	if in.UnitPrice != nil {
		return in.UnitPrice.Round(2)
	}
	return catalogPrice
}
