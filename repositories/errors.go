package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record conflicts with an existing one")
	ErrInUse            = errors.New("record is referenced by other records")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrRetryable        = errors.New("operation could not be serialized, please retry")
	ErrStaleTotals      = errors.New("bill totals do not match its line items")
	ErrOutOfRange       = errors.New("value out of range")
)

// Postgres SQLSTATE codes the store reacts to.
const (
	pgNumericOutOfRange    = "22003"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// translateError maps driver and gorm errors onto the store's error set.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s", ErrOutOfRange, pgErr.Message)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", ErrRetryable, pgErr.Message)
		}
	}
	return err
}

// translateDeleteError is translateError for deletes, where a foreign key
// violation means the row is still referenced.
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", ErrInUse, pgErr.ConstraintName)
	}
	return translateError(err)
}
