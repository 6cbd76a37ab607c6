package billing

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// YearMonthLayout formats the per-month sequence key, e.g. "202405".
const YearMonthLayout = "200601"

var invoicePattern = regexp.MustCompile(`^(\d{6})-(\d{4,})$`)

// Counter hands out the next value of a named counter. Implementations must
// serialize callers that share a key and must not block callers of other keys.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
}

// YearMonthKey returns the sequence key for the month containing t.
func YearMonthKey(t time.Time) string {
	return t.Format(YearMonthLayout)
}

// FormatInvoiceNumber joins a month key and a counter value.
func FormatInvoiceNumber(key string, value int64) string {
	return fmt.Sprintf("%s-%04d", key, value)
}

// ParseInvoiceNumber splits an invoice number into its month key and counter.
func ParseInvoiceNumber(number string) (string, int64, error) {
	m := invoicePattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, fmt.Errorf("malformed invoice number %q", number)
	}
	value, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed invoice number %q: %w", number, err)
	}
	return m[1], value, nil
}

// NextInvoiceNumber allocates the next invoice number for the month of date.
// A zero date means the current time.
func NextInvoiceNumber(ctx context.Context, counter Counter, date time.Time) (string, error) {
	if date.IsZero() {
		date = time.Now()
	}
	key := YearMonthKey(date)
	value, err := counter.Increment(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice number for %s: %w", key, err)
	}
	return FormatInvoiceNumber(key, value), nil
}
