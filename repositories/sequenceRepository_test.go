package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"HospitalMgmt/billing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceCounter_Increment(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences (year_month, last_value) VALUES ($1, 1)")).
		WithArgs("202501").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(3))

	number, err := billing.NextInvoiceNumber(context.Background(), NewSequenceCounter(db),
		time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "202501-0003", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceCounter_DeadlockIsRetryable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoice_sequences")).
		WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})

	_, err := NewSequenceCounter(db).Increment(context.Background(), "202501")

	assert.ErrorIs(t, err, ErrRetryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "23505"}), ErrConflict)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "23503"}), ErrInvalidReference)
	assert.ErrorIs(t, translateDeleteError(&pgconn.PgError{Code: "23503"}), ErrInUse)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "40001"}), ErrRetryable)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "55P03"}), ErrRetryable)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"}), ErrOutOfRange)
}
