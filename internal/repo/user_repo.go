// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a new User row for the given identity-provider subject.
// The user ID is a randomly generated UUID (string).
func CreateUser(ctx context.Context, db *gorm.DB, sub, email, name string) (*domain.User, error) {
	u := &domain.User{
		ID:            uuid.NewString(),
		Sub:           sub,
		Email:         email,
		Name:          name,
		AlarmsEnabled: true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserBySub fetches a user by identity-provider subject, or ErrNotFound.
func GetUserBySub(ctx context.Context, db *gorm.DB, sub string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("sub = ?", sub).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by primary key, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser applies the given column updates to a user row. If no rows are
// affected, it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateUser(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPushToken stores (or clears, when token is empty) the push token and
// the raw device descriptor for a user.
func SetPushToken(ctx context.Context, db *gorm.DB, id, token, deviceInfo string) error {
	return UpdateUser(ctx, db, id, map[string]any{
		"push_token":  token,
		"device_info": deviceInfo,
	})
}

// ListUsersWithPushToken returns every active user with a registered push
// token. Used by the scheduled reminder jobs to build the delivery set.
func ListUsersWithPushToken(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Where("push_token <> '' AND alarms_enabled = ?", true).
		Find(&out).Error
	return out, err
}

// SoftDeleteUser marks a user row as deleted without removing it. Pets and
// related rows are left intact; account withdrawal keeps data recoverable.
func SoftDeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
