// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Pet model.
//
// Ownership is enforced at this layer: every lookup and mutation is scoped
// to the owning userID, so a missing row and a row owned by someone else are
// indistinguishable (both surface as ErrNotFound).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// CreatePet inserts a new Pet row owned by userID. The pet ID is a randomly
// generated UUID (string), and CreatedAt is set to UTC.
func CreatePet(ctx context.Context, db *gorm.DB, userID string, p *domain.Pet) (*domain.Pet, error) {
	p.ID = uuid.NewString()
	p.UserID = userID
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPets returns all pets belonging to userID, ordered by creation time
// ascending (registration order). It returns an empty slice if the user has
// no pets.
func ListPets(ctx context.Context, db *gorm.DB, userID string) ([]domain.Pet, error) {
	var out []domain.Pet
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// CountPets returns the total number of pets owned by the user.
func CountPets(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// GetPet fetches a single pet by its ID and owner (userID). If the record
// does not exist, it returns ErrNotFound.
func GetPet(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Pet, error) {
	var p domain.Pet
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePet applies the given column updates to a pet identified by id and
// owned by userID. If no rows are affected (pet missing or not owned by
// userID), it returns ErrNotFound.
func UpdatePet(ctx context.Context, db *gorm.DB, id, userID string, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePet soft-deletes a pet identified by id and owned by userID.
// Returns ErrNotFound when the pet does not exist or is not theirs.
func DeletePet(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Pet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
