package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"HospitalMgmt/billing"
	"HospitalMgmt/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newOPDBill() *models.OPDBill {
	bill := &models.OPDBill{BillingBase: models.BillingBase{
		PatientID:   4,
		BillingDate: datatypes.Date(time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)),
	}}
	bill.ApplyTotals(billing.Recompute[models.OPDLineItem](nil, decimal.Zero, decimal.Zero))
	return bill
}

func TestOPDBillCreate_AllocatesNumberInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences")).
		WithArgs("202501").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "opd_bill"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	bill := newOPDBill()
	require.NoError(t, NewOPDBillRepository(db, nil).Create(context.Background(), bill))

	assert.Equal(t, uint(11), bill.ID)
	assert.Equal(t, "202501-0001", bill.InvoiceNumber)
	assert.Equal(t, billing.StatusPaid, bill.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOPDBillCreate_FailedInsertReleasesNumber(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences")).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "opd_bill"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_opd_bill_patient"})
	mock.ExpectRollback()

	bill := newOPDBill()
	err := NewOPDBillRepository(db, nil).Create(context.Background(), bill)

	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Empty(t, bill.InvoiceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOPDBillCreate_RejectsStaleTotals(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	bill := newOPDBill()
	bill.PaymentStatus = billing.StatusDue

	err := NewOPDBillRepository(db, nil).Create(context.Background(), bill)

	assert.ErrorIs(t, err, ErrStaleTotals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOPDBillMutate_RejectsStaleTotals(t *testing.T) {
	db, mock := newMockDB(t)
	columns := []string{"id", "invoice_number", "patient_id", "subtotal", "discount",
		"total_amount", "paid_amount", "due_amount", "payment_status", "billing_date"}
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "opd_bill" WHERE "opd_bill"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, "202501-0002", 4, "0", "0", "0", "0", "0", "paid", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "opd_line_item" WHERE bill_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bill_id", "item_id", "quantity", "unit_price"}))
	mock.ExpectRollback()

	_, err := NewOPDBillRepository(db, nil).Mutate(context.Background(), 3, func(bill *models.OPDBill) error {
		bill.Items = append(bill.Items, models.OPDLineItem{ItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(500)})
		return nil
	})

	assert.ErrorIs(t, err, ErrStaleTotals)
	assert.NoError(t, mock.ExpectationsWereMet())
}
