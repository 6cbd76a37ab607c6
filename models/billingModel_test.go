package models

import (
	"testing"
	"time"

	"HospitalMgmt/billing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestLineTotal(t *testing.T) {
	opd := OPDLineItem{Quantity: 2, UnitPrice: decimal.RequireFromString("500.00")}
	lab := PathologyLineItem{Quantity: 3, UnitPrice: decimal.RequireFromString("650.50")}

	assert.Equal(t, "1000.00", opd.LineTotal().StringFixed(2))
	assert.Equal(t, "1951.50", lab.LineTotal().StringFixed(2))
}

func TestApplyTotalsAndMatch(t *testing.T) {
	bill := OPDBill{BillingBase: BillingBase{
		Discount:    decimal.RequireFromString("200"),
		PaidAmount:  decimal.RequireFromString("500"),
		BillingDate: datatypes.Date(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}}
	bill.Items = []OPDLineItem{{Quantity: 2, UnitPrice: decimal.RequireFromString("500.00")}}

	assert.False(t, TotalsMatch(bill.Base(), bill.Items))

	bill.ApplyTotals(billing.Recompute(bill.Items, bill.Discount, bill.PaidAmount))

	assert.True(t, TotalsMatch(bill.Base(), bill.Items))
	assert.Equal(t, billing.StatusPartial, bill.PaymentStatus)
	assert.Equal(t, "300.00", bill.DueAmount.StringFixed(2))
	assert.Equal(t, bill.Totals().Total, bill.TotalAmount)

	bill.Items = append(bill.Items, OPDLineItem{Quantity: 1, UnitPrice: decimal.RequireFromString("300.00")})
	assert.False(t, TotalsMatch(bill.Base(), bill.Items))
}

func TestBillingTime(t *testing.T) {
	day := time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)
	base := BillingBase{BillingDate: datatypes.Date(day)}

	assert.Equal(t, "202405", billing.YearMonthKey(base.BillingTime()))
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "dr_smith", User{Username: "dr_smith"}.DisplayName())
	assert.Equal(t, "John Smith", User{Username: "dr_smith", FullName: "John Smith"}.DisplayName())
	assert.True(t, User{Role: RoleSuperAdmin}.IsSuperAdmin())
}
