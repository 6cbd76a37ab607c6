package repositories

import (
	"HospitalMgmt/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommissionRepository is an append-only ledger: there is no update or delete.
type CommissionRepository interface {
	Create(ctx context.Context, record *models.CommissionRecord) error
	GetAll(ctx context.Context) ([]models.CommissionRecord, error)
	ByStaff(ctx context.Context, staffID uint) ([]models.CommissionRecord, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, record *models.CommissionRecord) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r *commissionRepository) GetAll(ctx context.Context) ([]models.CommissionRecord, error) {
	var records []models.CommissionRecord
	if err := r.newest(r.db.WithContext(ctx)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get commissions: %w", err)
	}
	return records, nil
}

func (r *commissionRepository) ByStaff(ctx context.Context, staffID uint) ([]models.CommissionRecord, error) {
	var records []models.CommissionRecord
	if err := r.newest(r.db.WithContext(ctx)).Where("staff_id = ?", staffID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get commissions for staff %d: %w", staffID, err)
	}
	return records, nil
}

func (r *commissionRepository) newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
