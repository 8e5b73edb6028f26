package mysql

import (
	"context"
	"errors"

	"storefront/domain/user"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository MySQL/GORM implementation of user repository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository Create user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save Save user (create or update)
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	userPO, err := po.FromUserDomain(u)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(userPO).Error
}

// FindByID Find user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO

	result := r.db.WithContext(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}

	return userPO.ToDomain()
}

// ClearCart Replace the user's cart with an empty mapping.
// Idempotent: an already-empty cart still matches and the write is a
// no-op, so retries after a partial checkout failure are safe.
func (r *UserRepository) ClearCart(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Model(&po.UserPO{}).
		Where("id = ?", userID).
		Update("cart_data", "{}")

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports zero affected rows both for a missing user and
		// for a cart that is already empty; only the former is an error.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&po.UserPO{}).
			Where("id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.NewUserNotFoundError(userID)
		}
	}

	return nil
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)
