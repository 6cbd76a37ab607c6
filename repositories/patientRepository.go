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
	PatientCacheExpiry = 7 * 24 * time.Hour
	patientsCacheKey   = "patients_cache"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Count(ctx context.Context) (int64, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Omit("ReferDoctor", "ConsultantDoctor").Create(patient).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(ctx, patient.ID)
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	var patient models.Patient
	found, err := r.cache.GetJSON(ctx, cacheKey, &patient)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get patient from cache")
	} else if found {
		return &patient, nil
	}

	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, translateError(err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set patient in cache")
	}
	return &patient, nil
}

// GetAll lists patients, most recently registered first.
func (r *patientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patients []models.Patient
	found, err := r.cache.GetJSON(ctx, patientsCacheKey, &patients)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get patients from cache")
	} else if found {
		return patients, nil
	}

	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, patientsCacheKey, patients, PatientCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set patients in cache")
	}
	return patients, nil
}

// Update rewrites the demographic fields of an existing patient.
func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	result := r.db.WithContext(ctx).Model(patient).
		Select("name", "age", "sex", "mobile_number", "refer_doctor_id", "consultant_doctor_id").
		Updates(patient)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx, patient.ID)
	return nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id), patientsCacheKey); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete patient cache")
	}
	// Bills embed the patient, so their cached copies go stale too.
	for _, pattern := range []string{"opd_bill*", "pathology_bill*"} {
		if err := r.cache.DeleteAll(ctx, pattern); err != nil {
			logger.Log.WithError(err).Warn("Failed to delete bill cache")
		}
	}
}

func (r *patientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
