package utils

import (
	"HospitalMgmt/billing"
	"HospitalMgmt/models"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrNegativeAmount = errors.New("must not be negative")
	ErrPositiveAmount = errors.New("must be greater than zero")
	ErrTooManyPlaces  = errors.New("must have at most 2 decimal places")
	ErrInvalidDate    = errors.New("must be a date in YYYY-MM-DD format")
	ErrAmountTooLarge = errors.New("must be no greater than 99999999.99")
)

// MaxAmount is the largest value a numeric(10,2) money column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// MaxQuantity caps the quantity of a single line item.
const MaxQuantity = 1000

// NonNegativeAmount accepts decimals >= 0 with at most two decimal places.
var NonNegativeAmount = validation.By(func(value interface{}) error {
	d, ok := asDecimal(value)
	if !ok {
		return nil
	}
	if d.IsNegative() {
		return ErrNegativeAmount
	}
	return checkAmount(d)
})

// PositiveAmount accepts decimals > 0 with at most two decimal places.
var PositiveAmount = validation.By(func(value interface{}) error {
	d, ok := asDecimal(value)
	if !ok {
		return nil
	}
	if !d.IsPositive() {
		return ErrPositiveAmount
	}
	return checkAmount(d)
})

var billingDate = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
})

func asDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	}
	return decimal.Decimal{}, false
}

func checkAmount(d decimal.Decimal) error {
	if d.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return checkPlaces(d)
}

func checkPlaces(d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return ErrTooManyPlaces
	}
	return nil
}

func ValidatePatient(p models.PatientInput) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&p.Sex, validation.Required, validation.In(models.SexMale, models.SexFemale, models.SexOther)),
		validation.Field(&p.MobileNumber, validation.Required, validation.Length(5, 20), is.Digit),
	)
}

func ValidateCatalog(c models.CatalogInput) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Price, NonNegativeAmount),
	)
}

func ValidateBill(b models.BillInput) error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.PatientID, validation.Required),
		validation.Field(&b.Discount, NonNegativeAmount),
		validation.Field(&b.PaidAmount, NonNegativeAmount),
		validation.Field(&b.BillingDate, billingDate),
	)
}

func ValidateLineItem(l models.LineItemInput) error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.CatalogID, validation.Required),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1), validation.Max(MaxQuantity),
			validation.By(lineTotalWithin(l.UnitPrice))),
		validation.Field(&l.UnitPrice, NonNegativeAmount),
	)
}

// lineTotalWithin rejects a quantity whose line total at price would not fit
// a money column. A nil price is checked later against the bill subtotal.
func lineTotalWithin(price *decimal.Decimal) validation.RuleFunc {
	return func(value interface{}) error {
		qty, _ := value.(int)
		if price == nil || qty <= 0 {
			return nil
		}
		if price.Mul(decimal.NewFromInt(int64(qty))).GreaterThan(MaxAmount) {
			return ErrAmountTooLarge
		}
		return nil
	}
}

// CheckBillTotals rejects a recomputed bill whose subtotal no longer fits a
// money column. The line quantity is the field blamed.
func CheckBillTotals(t billing.Totals) error {
	if t.Subtotal.GreaterThan(MaxAmount) {
		return validation.Errors{"quantity": ErrAmountTooLarge}
	}
	return nil
}

func ValidateReport(r models.ReportInput) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReportFile, validation.Required, validation.Length(1, 255)),
	)
}

func ValidateCommission(c models.CommissionInput) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.StaffID, validation.Required),
		validation.Field(&c.Role, validation.Required,
			validation.In(models.CommissionDoctor, models.CommissionPharmacist, models.CommissionPathologist)),
		validation.Field(&c.BillReference, validation.Required, validation.Length(1, 32)),
		validation.Field(&c.Amount, PositiveAmount),
	)
}

func ValidateDepartment(d models.DepartmentInput) error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(1, 120)),
	)
}

func ValidateStaff(s models.StaffInput) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&s.Email, is.Email),
		validation.Field(&s.Password, validation.Required.Error("password cannot be blank"), validation.Length(8, 128)),
		validation.Field(&s.Role, validation.Required, validation.In(models.Roles...)),
		validation.Field(&s.CommissionRate, NonNegativeAmount, validation.By(percentage)),
		validation.Field(&s.CommissionFixed, NonNegativeAmount),
	)
}

func ValidateLogin(l models.LoginRequest) error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Username, validation.Required),
		validation.Field(&l.Password, validation.Required),
	)
}

func ValidateProfile(p models.ProfileUpdate) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.Length(0, 150)),
		validation.Field(&p.Email, is.Email),
	)
}

func ValidateInvoiceEmail(r models.InvoiceEmailRequest) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.To, validation.Required, is.Email),
	)
}

func percentage(value interface{}) error {
	d, ok := asDecimal(value)
	if ok && d.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("must not exceed 100")
	}
	return nil
}
