package models

import (
	"github.com/shopspring/decimal"
)

// CatalogBase is the shape shared by every priced catalog entry.
type CatalogBase struct {
	ID     uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name   string          `gorm:"column:name;size:120;not null;unique" json:"name"`
	Price  decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Active bool            `gorm:"column:active;not null" json:"active"`
}

// Entry exposes the shared catalog fields of an embedding type.
func (c *CatalogBase) Entry() *CatalogBase {
	return c
}

// OPDItem is an outpatient service with a list price.
type OPDItem struct {
	CatalogBase
}

func (OPDItem) TableName() string {
	return "opd_item"
}

// PathologyTest is a laboratory test with a list price.
type PathologyTest struct {
	CatalogBase
}

func (PathologyTest) TableName() string {
	return "pathology_test"
}
