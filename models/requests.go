package models

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of billing dates.
const DateLayout = "2006-01-02"

// PatientInput is the writable part of a patient.
type PatientInput struct {
	Name               string `json:"name"`
	Age                int    `json:"age"`
	Sex                string `json:"sex"`
	MobileNumber       string `json:"mobile_number"`
	ReferDoctorID      *uint  `json:"refer_doctor_id"`
	ConsultantDoctorID *uint  `json:"consultant_doctor_id"`
}

// CatalogInput creates or replaces an OPD item or pathology test. A missing
// Active means active.
type CatalogInput struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active *bool           `json:"active"`
}

// BillInput carries the bill-level fields of an OPD or pathology bill.
// BillingDate is empty or DateLayout; empty means today.
type BillInput struct {
	PatientID     uint            `json:"patient_id"`
	Discount      decimal.Decimal `json:"discount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BillingDate   string          `json:"billing_date"`
	PathologistID *uint           `json:"pathologist_id"`
}

// LineItemInput adds or changes a line. CatalogID names the OPD item or
// pathology test; a nil UnitPrice captures the current catalog price.
type LineItemInput struct {
	CatalogID uint             `json:"catalog_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type ReportInput struct {
	ReportFile string `json:"report_file"`
}

type CommissionInput struct {
	StaffID       uint            `json:"staff_id"`
	Role          string          `json:"role"`
	BillReference string          `json:"bill_reference"`
	Amount        decimal.Decimal `json:"amount"`
}

type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StaffInput registers a user account together with its staff profile.
type StaffInput struct {
	Username        string          `json:"username"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	Role            string          `json:"role"`
	DepartmentID    *uint           `json:"department_id"`
	Phone           string          `json:"phone"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	CommissionFixed decimal.Decimal `json:"commission_fixed"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type InvoiceEmailRequest struct {
	To string `json:"to"`
}

// Dashboard counts the records the front desk tracks.
type Dashboard struct {
	TotalPatients       int64 `json:"total_patients"`
	TotalOPDBills       int64 `json:"total_opd_bills"`
	TotalPathologyBills int64 `json:"total_pathology_bills"`
}
