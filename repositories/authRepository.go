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
	UserCacheExpiry = 7 * 24 * time.Hour
)

type UserRepository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, userID int64, fullName, email string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

// GetUserByUsername includes the password hash and is never cached.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(userID)
	var user models.User
	found, err := r.cache.GetJSON(ctx, cacheKey, &user)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to get user from cache")
	} else if found {
		return &user, nil
	}

	err = r.db.WithContext(ctx).Select("id", "username", "full_name", "email", "role", "created_at").
		First(&user, userID).Error
	if err != nil {
		return nil, translateError(err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, user, UserCacheExpiry); err != nil {
		logger.Log.WithError(err).Warn("Failed to set user in cache")
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) UpdateUserProfile(ctx context.Context, userID int64, fullName, email string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.cache.Delete(ctx, r.getUserCacheKey(userID)); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete user cache")
	}
	return nil
}

func (r *userRepository) getUserCacheKey(userID int64) string {
	return fmt.Sprintf("user_cache:%d", userID)
}
