package models

import (
	"time"

	"HospitalMgmt/billing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceSequence holds the last invoice counter issued for a year-month.
type InvoiceSequence struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	YearMonth string `gorm:"column:year_month;size:6;not null;uniqueIndex" json:"year_month"`
	LastValue int64  `gorm:"column:last_value;not null;default:0;check:last_value >= 0" json:"last_value"`
}

func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

// BillingBase is the record shape shared by OPD and pathology bills.
type BillingBase struct {
	ID            uint                  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	InvoiceNumber string                `gorm:"column:invoice_number;size:16;not null;uniqueIndex" json:"invoice_number"`
	PatientID     uint                  `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Subtotal      decimal.Decimal       `gorm:"column:subtotal;type:numeric(10,2);not null;default:0" json:"subtotal"`
	Discount      decimal.Decimal       `gorm:"column:discount;type:numeric(10,2);not null;default:0" json:"discount"`
	TotalAmount   decimal.Decimal       `gorm:"column:total_amount;type:numeric(10,2);not null;default:0" json:"total_amount"`
	PaidAmount    decimal.Decimal       `gorm:"column:paid_amount;type:numeric(10,2);not null;default:0" json:"paid_amount"`
	DueAmount     decimal.Decimal       `gorm:"column:due_amount;type:numeric(10,2);not null;default:0" json:"due_amount"`
	PaymentStatus billing.PaymentStatus `gorm:"column:payment_status;size:20;not null;default:due;check:payment_status IN ('due', 'partial', 'paid')" json:"payment_status"`
	BillingDate   datatypes.Date        `gorm:"column:billing_date;not null;index" json:"billing_date"`
	CreatedByID   *int64                `gorm:"column:created_by_id;index" json:"created_by_id"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Base exposes the shared bill fields of an embedding type.
func (b *BillingBase) Base() *BillingBase {
	return b
}

// BillingTime returns the billing date as a time.Time.
func (b *BillingBase) BillingTime() time.Time {
	return time.Time(b.BillingDate)
}

// ApplyTotals copies an aggregation result onto the bill.
func (b *BillingBase) ApplyTotals(t billing.Totals) {
	b.Subtotal = t.Subtotal
	b.Discount = t.Discount
	b.TotalAmount = t.Total
	b.PaidAmount = t.Paid
	b.DueAmount = t.Due
	b.PaymentStatus = t.Status
}

// Totals returns the stored monetary fields as an aggregation result.
func (b *BillingBase) Totals() billing.Totals {
	return billing.Totals{
		Subtotal: b.Subtotal,
		Discount: b.Discount,
		Total:    b.TotalAmount,
		Paid:     b.PaidAmount,
		Due:      b.DueAmount,
		Status:   b.PaymentStatus,
	}
}

// TotalsMatch reports whether the stored totals equal a fresh aggregation of lines.
func TotalsMatch[L billing.Line](b *BillingBase, lines []L) bool {
	fresh := billing.Recompute(lines, b.Discount, b.PaidAmount)
	return fresh.Subtotal.Equal(b.Subtotal) &&
		fresh.Discount.Equal(b.Discount) &&
		fresh.Total.Equal(b.TotalAmount) &&
		fresh.Paid.Equal(b.PaidAmount) &&
		fresh.Due.Equal(b.DueAmount) &&
		fresh.Status == b.PaymentStatus
}

// OPDBill model
type OPDBill struct {
	BillingBase
	Patient   Patient       `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"patient"`
	CreatedBy *User         `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	Items     []OPDLineItem `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (OPDBill) TableName() string {
	return "opd_bill"
}

// OPDLineItem model
type OPDLineItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID    uint            `gorm:"column:bill_id;not null;index" json:"bill_id"`
	ItemID    uint            `gorm:"column:item_id;not null;index" json:"item_id"`
	Quantity  int             `gorm:"column:quantity;not null;default:1;check:quantity >= 1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"-" json:"line_total"`
	Item      OPDItem         `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:RESTRICT" json:"item"`
}

func (OPDLineItem) TableName() string {
	return "opd_line_item"
}

// LineTotal is unit price times quantity.
func (l OPDLineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Label is the catalog name printed on an invoice.
func (l OPDLineItem) Label() string {
	return l.Item.Name
}

func (l *OPDLineItem) AfterFind(tx *gorm.DB) error {
	l.Total = l.LineTotal()
	return nil
}

// PathologyBill model
type PathologyBill struct {
	BillingBase
	PathologistID *uint               `gorm:"column:pathologist_id;index" json:"pathologist_id"`
	Patient       Patient             `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"patient"`
	Pathologist   *StaffProfile       `gorm:"foreignKey:PathologistID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedBy     *User               `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	Items         []PathologyLineItem `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	Reports       []PathologyReport   `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE" json:"reports"`
}

func (PathologyBill) TableName() string {
	return "pathology_bill"
}

// PathologyLineItem model
type PathologyLineItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID    uint            `gorm:"column:bill_id;not null;index" json:"bill_id"`
	TestID    uint            `gorm:"column:test_id;not null;index" json:"test_id"`
	Quantity  int             `gorm:"column:quantity;not null;default:1;check:quantity >= 1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"-" json:"line_total"`
	Test      PathologyTest   `gorm:"foreignKey:TestID;references:ID;constraint:OnDelete:RESTRICT" json:"test"`
}

func (PathologyLineItem) TableName() string {
	return "pathology_line_item"
}

// LineTotal is unit price times quantity.
func (l PathologyLineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Label is the catalog name printed on an invoice.
func (l PathologyLineItem) Label() string {
	return l.Test.Name
}

func (l *PathologyLineItem) AfterFind(tx *gorm.DB) error {
	l.Total = l.LineTotal()
	return nil
}

// PathologyReport model
type PathologyReport struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID     uint      `gorm:"column:bill_id;not null;index" json:"bill_id"`
	ReportFile string    `gorm:"column:report_file;size:255;not null" json:"report_file"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
}

func (PathologyReport) TableName() string {
	return "pathology_report"
}

// Commission roles.
const (
	CommissionDoctor      = "doctor"
	CommissionPharmacist  = "pharmacist"
	CommissionPathologist = "pathologist"
)

// CommissionRecord is an append-only ledger entry crediting a staff member.
type CommissionRecord struct {
	ID            uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StaffID       uint            `gorm:"column:staff_id;not null;index" json:"staff_id"`
	Role          string          `gorm:"column:role;size:20;not null;check:role IN ('doctor', 'pharmacist', 'pathologist')" json:"role"`
	BillReference string          `gorm:"column:bill_reference;size:32;not null" json:"bill_reference"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Staff         StaffProfile    `gorm:"foreignKey:StaffID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CommissionRecord) TableName() string {
	return "commission_record"
}
