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

const opdBillsCacheKey = "opd_bills_cache"

type OPDBillRepository interface {
	Create(ctx context.Context, bill *models.OPDBill) error
	GetByID(ctx context.Context, id uint) (*models.OPDBill, error)
	GetAll(ctx context.Context) ([]models.OPDBill, error)
	Mutate(ctx context.Context, id uint, fn func(bill *models.OPDBill) error) (*models.OPDBill, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type opdBillRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewOPDBillRepository(db *gorm.DB, cache *cache.Cache) OPDBillRepository {
	return &opdBillRepository{db: db, cache: cache}
}

// Create inserts a bill without line items and assigns its invoice number in
// the same transaction. On failure the bill is left without a number.
func (r *opdBillRepository) Create(ctx context.Context, bill *models.OPDBill) error {
	var assigned bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !models.TotalsMatch[models.OPDLineItem](bill.Base(), nil) {
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

func (r *opdBillRepository) GetByID(ctx context.Context, id uint) (*models.OPDBill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	var bill models.OPDBill
	found, err := r.cache.GetJSON(ctx, cacheKey, &bill)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get OPD bill from cache")
	} else if found {
		return &bill, nil
	}

	if err := r.withDetails(r.db.WithContext(ctx)).First(&bill, id).Error; err != nil {
		return nil, translateError(err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, bill, billCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set OPD bill in cache")
	}
	return &bill, nil
}

// GetAll lists bills, newest billing date first.
func (r *opdBillRepository) GetAll(ctx context.Context) ([]models.OPDBill, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var bills []models.OPDBill
	found, err := r.cache.GetJSON(ctx, opdBillsCacheKey, &bills)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get OPD bills from cache")
	} else if found {
		return bills, nil
	}

	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("billing_date DESC").Order("id DESC").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to get OPD bills: %w", err)
	}

	if err := r.cache.SetJSON(ctx, opdBillsCacheKey, bills, billCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set OPD bills in cache")
	}
	return bills, nil
}

// Mutate locks the bill, hands it with its line items to fn and writes the
// result back in one transaction. fn must leave the totals recomputed; items
// it drops from the slice are deleted.
func (r *opdBillRepository) Mutate(ctx context.Context, id uint, fn func(bill *models.OPDBill) error) (*models.OPDBill, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.OPDBill
		if err := lockBill(tx, &bill, id); err != nil {
			return err
		}
		if err := tx.Preload("Item").Scopes(byID).Where("bill_id = ?", id).Find(&bill.Items).Error; err != nil {
			return fmt.Errorf("failed to load OPD line items: %w", err)
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

		if err := tx.Model(&bill).Omit(clause.Associations).Select(billColumns).Updates(&bill).Error; err != nil {
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
			if err := tx.Where("bill_id = ?", id).Delete(&models.OPDLineItem{}, removed).Error; err != nil {
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

// Delete removes a bill together with its line items.
func (r *opdBillRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&models.OPDLineItem{}).Error; err != nil {
			return translateDeleteError(err)
		}
		result := tx.Delete(&models.OPDBill{}, id)
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

func (r *opdBillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OPDBill{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count OPD bills: %w", err)
	}
	return count, nil
}

func (r *opdBillRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Items", byID).Preload("Items.Item")
}

func (r *opdBillRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getBillCacheKey(id), opdBillsCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete OPD bill cache")
	}
}

func (r *opdBillRepository) getBillCacheKey(id uint) string {
	return fmt.Sprintf("opd_bill_cache:%d", id)
}
