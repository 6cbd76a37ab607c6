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

const (
	StaffCacheExpiry    = 7 * 24 * time.Hour
	staffCacheKey       = "staff_cache"
	departmentsCacheKey = "departments_cache"
)

type StaffRepository interface {
	CreateDepartment(ctx context.Context, department *models.Department) error
	GetDepartmentByID(ctx context.Context, id uint) (*models.Department, error)
	GetAllDepartments(ctx context.Context) ([]models.Department, error)
	CreateStaff(ctx context.Context, user *models.User, profile *models.StaffProfile) error
	GetStaffByID(ctx context.Context, id uint) (*models.StaffProfile, error)
	GetAllStaff(ctx context.Context) ([]models.StaffProfile, error)
}

type staffRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewStaffRepository(db *gorm.DB, cache *cache.Cache) StaffRepository {
	return &staffRepository{db: db, cache: cache}
}

func (r *staffRepository) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := r.db.WithContext(ctx).Create(department).Error; err != nil {
		return translateError(err)
	}
	if err := r.cache.Delete(ctx, departmentsCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete department cache")
	}
	return nil
}

func (r *staffRepository) GetDepartmentByID(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &department, nil
}

func (r *staffRepository) GetAllDepartments(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var departments []models.Department
	found, err := r.cache.GetJSON(ctx, departmentsCacheKey, &departments)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get departments from cache")
	} else if found {
		return departments, nil
	}

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to get departments: %w", err)
	}
	if err := r.cache.SetJSON(ctx, departmentsCacheKey, departments, StaffCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set departments in cache")
	}
	return departments, nil
}

// CreateStaff inserts a user account and its staff profile together.
func (r *staffRepository) CreateStaff(ctx context.Context, user *models.User, profile *models.StaffProfile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateError(err)
		}
		profile.UserID = user.ID
		return translateError(tx.Omit(clause.Associations).Create(profile).Error)
	})
	if err != nil {
		user.ID = 0
		profile.ID = 0
		return err
	}
	if err := r.cache.Delete(ctx, staffCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete staff cache")
	}
	return nil
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id uint) (*models.StaffProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.StaffProfile
	if err := r.withDetails(r.db.WithContext(ctx)).First(&profile, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *staffRepository) GetAllStaff(ctx context.Context) ([]models.StaffProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff []models.StaffProfile
	found, err := r.cache.GetJSON(ctx, staffCacheKey, &staff)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get staff from cache")
	} else if found {
		return staff, nil
	}

	if err := r.withDetails(r.db.WithContext(ctx)).Order("id ASC").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if err := r.cache.SetJSON(ctx, staffCacheKey, staff, StaffCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set staff in cache")
	}
	return staff, nil
}

func (r *staffRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username", "full_name", "email", "role", "created_at")
	}).Preload("Department")
}
