package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sex values accepted for a patient.
const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

// Department model
type Department struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string `gorm:"column:name;size:120;not null;unique" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (Department) TableName() string {
	return "department"
}

// StaffProfile model
type StaffProfile struct {
	ID              uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID          int64           `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	DepartmentID    *uint           `gorm:"column:department_id;index" json:"department_id"`
	Phone           string          `gorm:"column:phone;size:20" json:"phone"`
	CommissionRate  decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null;default:0" json:"commission_rate"`
	CommissionFixed decimal.Decimal `gorm:"column:commission_fixed;type:numeric(10,2);not null;default:0" json:"commission_fixed"`
	User            User            `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`
	Department      *Department     `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
}

func (StaffProfile) TableName() string {
	return "staff_profile"
}

// Patient model
type Patient struct {
	ID                 uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name               string        `gorm:"column:name;size:120;not null" json:"name"`
	Age                int           `gorm:"column:age;not null;check:age >= 0" json:"age"`
	Sex                string        `gorm:"column:sex;size:10;check:sex IN ('male', 'female', 'other');not null" json:"sex"`
	MobileNumber       string        `gorm:"column:mobile_number;size:20;not null;index" json:"mobile_number"`
	ReferDoctorID      *uint         `gorm:"column:refer_doctor_id;index" json:"refer_doctor_id"`
	ConsultantDoctorID *uint         `gorm:"column:consultant_doctor_id;index" json:"consultant_doctor_id"`
	CreatedAt          time.Time     `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	ReferDoctor        *StaffProfile `gorm:"foreignKey:ReferDoctorID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	ConsultantDoctor   *StaffProfile `gorm:"foreignKey:ConsultantDoctorID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}
