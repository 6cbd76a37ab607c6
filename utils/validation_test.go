package utils

import (
	"testing"

	"HospitalMgmt/billing"
	"HospitalMgmt/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestValidatePatient(t *testing.T) {
	valid := models.PatientInput{Name: "Asha", Age: 0, Sex: models.SexFemale, MobileNumber: "9990001111"}
	assert.NoError(t, ValidatePatient(valid))

	invalid := valid
	invalid.Age = -1
	invalid.Sex = "unknown"
	errs := fieldErrors(t, ValidatePatient(invalid))
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "sex")
}

func TestValidateBill(t *testing.T) {
	assert.NoError(t, ValidateBill(models.BillInput{PatientID: 1, BillingDate: "2025-01-05"}))
	assert.NoError(t, ValidateBill(models.BillInput{PatientID: 1}))

	errs := fieldErrors(t, ValidateBill(models.BillInput{
		Discount:    decimal.RequireFromString("-1"),
		PaidAmount:  decimal.RequireFromString("10.005"),
		BillingDate: "05/01/2025",
	}))
	assert.Contains(t, errs, "patient_id")
	assert.Equal(t, ErrNegativeAmount, errs["discount"])
	assert.Equal(t, ErrTooManyPlaces, errs["paid_amount"])
	assert.Equal(t, ErrInvalidDate, errs["billing_date"])
}

func TestValidateLineItem(t *testing.T) {
	assert.NoError(t, ValidateLineItem(models.LineItemInput{CatalogID: 2, Quantity: 1}))

	negative := decimal.NewFromInt(-5)
	errs := fieldErrors(t, ValidateLineItem(models.LineItemInput{CatalogID: 2, Quantity: 0, UnitPrice: &negative}))
	assert.Contains(t, errs, "quantity")
	assert.Equal(t, ErrNegativeAmount, errs["unit_price"])
}

func TestValidateCommission(t *testing.T) {
	valid := models.CommissionInput{StaffID: 1, Role: models.CommissionDoctor, BillReference: "202501-0001", Amount: decimal.NewFromInt(50)}
	assert.NoError(t, ValidateCommission(valid))

	invalid := valid
	invalid.Role = "nurse"
	invalid.Amount = decimal.Zero
	errs := fieldErrors(t, ValidateCommission(invalid))
	assert.Contains(t, errs, "role")
	assert.Equal(t, ErrPositiveAmount, errs["amount"])
}

func TestValidateStaff(t *testing.T) {
	valid := models.StaffInput{Username: "dr_smith", Password: "s3cretpass", Role: models.RoleDoctor,
		CommissionRate: decimal.RequireFromString("12.50")}
	assert.NoError(t, ValidateStaff(valid))

	invalid := valid
	invalid.Role = "janitor"
	invalid.CommissionRate = decimal.NewFromInt(120)
	errs := fieldErrors(t, ValidateStaff(invalid))
	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "commission_rate")
}

func TestAmountsMustFitMoneyColumns(t *testing.T) {
	huge := decimal.RequireFromString("1000000000")
	largest := decimal.RequireFromString("99999999.99")

	errs := fieldErrors(t, ValidateBill(models.BillInput{PatientID: 1, Discount: huge, PaidAmount: huge}))
	assert.Equal(t, ErrAmountTooLarge, errs["discount"])
	assert.Equal(t, ErrAmountTooLarge, errs["paid_amount"])
	assert.NoError(t, ValidateBill(models.BillInput{PatientID: 1, Discount: largest, PaidAmount: largest}))

	errs = fieldErrors(t, ValidateCatalog(models.CatalogInput{Name: "MRI", Price: huge}))
	assert.Equal(t, ErrAmountTooLarge, errs["price"])

	errs = fieldErrors(t, ValidateLineItem(models.LineItemInput{CatalogID: 1, Quantity: 1000, UnitPrice: &largest}))
	assert.Equal(t, ErrAmountTooLarge, errs["quantity"])

	errs = fieldErrors(t, ValidateLineItem(models.LineItemInput{CatalogID: 1, Quantity: MaxQuantity + 1}))
	assert.Contains(t, errs, "quantity")

	price := decimal.RequireFromString("99999.99")
	assert.NoError(t, ValidateLineItem(models.LineItemInput{CatalogID: 1, Quantity: 1000, UnitPrice: &price}))
}

func TestCheckBillTotals(t *testing.T) {
	assert.NoError(t, CheckBillTotals(billing.Totals{Subtotal: MaxAmount}))

	errs := fieldErrors(t, CheckBillTotals(billing.Totals{Subtotal: MaxAmount.Add(decimal.RequireFromString("0.01"))}))
	assert.Equal(t, ErrAmountTooLarge, errs["quantity"])
}
