package repositories

import (
	"HospitalMgmt/cache"
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	CatalogCacheExpiry = 24 * time.Hour
)

// CatalogEntry is satisfied by pointers to catalog models (OPD items and
// pathology tests).
type CatalogEntry[T any] interface {
	*T
	Entry() *models.CatalogBase
	TableName() string
}

// CatalogRepository stores one kind of priced catalog entry. Entries that
// are referenced by a line item cannot be deleted.
type CatalogRepository[T any, P CatalogEntry[T]] struct {
	db        *gorm.DB
	cache     *cache.Cache
	lineModel interface{}
	refColumn string
	// billPattern matches the cached bills that embed entry names and prices.
	billPattern string
}

// NewCatalogRepository binds a catalog table to the line-item table that
// references it through refColumn. Writes drop cached bills matching
// billPattern.
func NewCatalogRepository[T any, P CatalogEntry[T]](db *gorm.DB, cache *cache.Cache, lineModel interface{}, refColumn, billPattern string) *CatalogRepository[T, P] {
	return &CatalogRepository[T, P]{db: db, cache: cache, lineModel: lineModel, refColumn: refColumn, billPattern: billPattern}
}

// NewOPDItemRepository stores OPD items referenced by OPD line items.
func NewOPDItemRepository(db *gorm.DB, cache *cache.Cache) *CatalogRepository[models.OPDItem, *models.OPDItem] {
	return NewCatalogRepository[models.OPDItem](db, cache, &models.OPDLineItem{}, "item_id", "opd_bill*")
}

// NewPathologyTestRepository stores pathology tests referenced by pathology line items.
func NewPathologyTestRepository(db *gorm.DB, cache *cache.Cache) *CatalogRepository[models.PathologyTest, *models.PathologyTest] {
	return NewCatalogRepository[models.PathologyTest](db, cache, &models.PathologyLineItem{}, "test_id", "pathology_bill*")
}

func (r *CatalogRepository[T, P]) listKey() string {
	var zero T
	return fmt.Sprintf("%s_cache", P(&zero).TableName())
}

func (r *CatalogRepository[T, P]) Create(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *CatalogRepository[T, P]) GetByID(ctx context.Context, id uint) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry T
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (r *CatalogRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entries []T
	found, err := r.cache.GetJSON(ctx, r.listKey(), &entries)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get catalog from cache")
	} else if found {
		return entries, nil
	}

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get catalog entries: %w", err)
	}
	if err := r.cache.SetJSON(ctx, r.listKey(), entries, CatalogCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set catalog in cache")
	}
	return entries, nil
}

// Update saves the entry. Existing line items keep the price they captured.
func (r *CatalogRepository[T, P]) Update(ctx context.Context, entry *T) error {
	result := r.db.WithContext(ctx).Model(entry).Select("name", "price", "active").Updates(entry)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes an unreferenced entry; referenced entries yield ErrInUse.
func (r *CatalogRepository[T, P]) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(r.lineModel).Where(r.refColumn+" = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count catalog references: %w", err)
		}
		if refs > 0 {
			return ErrInUse
		}
		var zero T
		result := tx.Delete(P(&zero), id)
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
	r.invalidate(ctx)
	return nil
}

func (r *CatalogRepository[T, P]) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, r.listKey()); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete catalog cache")
	}
	if err := r.cache.DeleteAll(ctx, r.billPattern); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete bill cache")
	}
}
