package repositories

import (
	"HospitalMgmt/cache"
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pathologyBillsCacheKey = "pathology_bills_cache"

type PathologyBillRepository interface {
	Create(ctx context.Context, bill *models.PathologyBill) error
	GetByID(ctx context.Context, id uint) (*models.PathologyBill, error)
	GetAll(ctx context.Context) ([]models.PathologyBill, error)
	Mutate(ctx context.Context, id uint, fn func(bill *models.PathologyBill) error) (*models.PathologyBill, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	AddReport(ctx context.Context, report *models.PathologyReport) error
	Reports(ctx context.Context, billID uint) ([]models.PathologyReport, error)
}

type pathologyBillRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPathologyBillRepository(db *gorm.DB, cache *cache.Cache) PathologyBillRepository {
	return &pathologyBillRepository{db: db, cache: cache}
}

func (r *pathologyBillRepository) Create(ctx context.Context, bill *models.PathologyBill) error {
	var assigned bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !models.TotalsMatch[models.PathologyLineItem](bill.Base(), nil) {
			return ErrStaleTotals
		}
		var err error
		if assigned, err = assignInvoiceNumber(ctx, tx, bill.Base()); err != nil {
			return err
		}
		return translateError(tx.Omit(clause.Associations).Create(bill).Error)
	})
	if err != nil {
		if assigned {
			bill.InvoiceNumber = ""
			bill.ID = 0
		}
		return err
	}
	r.invalidate(ctx, bill.ID)
	return nil
}

func (r *pathologyBillRepository) GetByID(ctx context.Context, id uint) (*models.PathologyBill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	var bill models.PathologyBill
	found, err := r.cache.GetJSON(ctx, cacheKey, &bill)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get pathology bill from cache")
	} else if found {
		return &bill, nil
	}

	if err := r.withDetails(r.db.WithContext(ctx)).First(&bill, id).Error; err != nil {
		return nil, translateError(err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, bill, billCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set pathology bill in cache")
	}
	return &bill, nil
}

func (r *pathologyBillRepository) GetAll(ctx context.Context) ([]models.PathologyBill, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var bills []models.PathologyBill
	found, err := r.cache.GetJSON(ctx, pathologyBillsCacheKey, &bills)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get pathology bills from cache")
	} else if found {
		return bills, nil
	}

	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("billing_date DESC").Order("id DESC").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to get pathology bills: %w", err)
	}

	if err := r.cache.SetJSON(ctx, pathologyBillsCacheKey, bills, billCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set pathology bills in cache")
	}
	return bills, nil
}

// Mutate follows the same locking contract as the OPD repository.
func (r *pathologyBillRepository) Mutate(ctx context.Context, id uint, fn func(bill *models.PathologyBill) error) (*models.PathologyBill, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.PathologyBill
		if err := lockBill(tx, &bill, id); err != nil {
			return err
		}
		if err := tx.Preload("Test").Scopes(byID).Where("bill_id = ?", id).Find(&bill.Items).Error; err != nil {
			return fmt.Errorf("failed to load pathology line items: %w", err)
		}

		invoiceNumber := bill.InvoiceNumber
		before := make([]uint, 0, len(bill.Items))
		for _, item := range bill.Items {
			before = append(before, item.ID)
		}

		if err := fn(&bill); err != nil {
			return err
		}
		bill.ID = id
		bill.InvoiceNumber = invoiceNumber
		if !models.TotalsMatch(bill.Base(), bill.Items) {
			return ErrStaleTotals
		}

		columns := append([]string{"pathologist_id"}, billColumns...)
		if err := tx.Model(&bill).Omit(clause.Associations).Select(columns).Updates(&bill).Error; err != nil {
			return translateError(err)
		}

		kept := make(map[uint]bool, len(bill.Items))
		for i := range bill.Items {
			item := &bill.Items[i]
			item.BillID = id
			if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
				return translateError(err)
			}
			kept[item.ID] = true
		}
		if removed := removedIDs(before, kept); len(removed) > 0 {
			if err := tx.Where("bill_id = ?", id).Delete(&models.PathologyLineItem{}, removed).Error; err != nil {
				return translateDeleteError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)
	return r.GetByID(ctx, id)
}

// Delete removes a bill with its line items and reports.
func (r *pathologyBillRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&models.PathologyReport{}).Error; err != nil {
			return translateDeleteError(err)
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.PathologyLineItem{}).Error; err != nil {
			return translateDeleteError(err)
		}
		result := tx.Delete(&models.PathologyBill{}, id)
		if result.Error != nil {
			return translateDeleteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *pathologyBillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PathologyBill{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pathology bills: %w", err)
	}
	return count, nil
}

// AddReport attaches a report reference to an existing bill.
func (r *pathologyBillRepository) AddReport(ctx context.Context, report *models.PathologyReport) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.PathologyBill{}).Where("id = ?", report.BillID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check pathology bill: %w", err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return translateError(tx.Create(report).Error)
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, report.BillID)
	return nil
}

func (r *pathologyBillRepository) Reports(ctx context.Context, billID uint) ([]models.PathologyReport, error) {
	var reports []models.PathologyReport
	if err := r.db.WithContext(ctx).Where("bill_id = ?", billID).
		Order("uploaded_at ASC").Order("id ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to get pathology reports: %w", err)
	}
	return reports, nil
}

func (r *pathologyBillRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Items", byID).Preload("Items.Test").Preload("Reports", byID)
}

func (r *pathologyBillRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getBillCacheKey(id), pathologyBillsCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete pathology bill cache")
	}
}

func (r *pathologyBillRepository) getBillCacheKey(id uint) string {
	return fmt.Sprintf("pathology_bill_cache:%d", id)
}
