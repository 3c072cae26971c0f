// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the CareLog
// model (daily check-ins).
//
// The (pet_id, date) pair is unique: a day has at most one check-in, and
// re-submitting replaces the stored answers instead of inserting a second
// row. UpsertCareLog implements that contract with the unique index as the
// conflict target.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// UpsertCareLog inserts the check-in for (petID, date) or, when a row for
// that day already exists, overwrites its answers. The returned CareLog is
// re-read after the write so callers always see the persisted row (including
// the original ID on conflict).
func UpsertCareLog(ctx context.Context, db *gorm.DB, petID, date, answers string) (*domain.CareLog, error) {
	now := time.Now().UTC()
	c := &domain.CareLog{
		ID:        uuid.NewString(),
		PetID:     petID,
		Date:      date,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pet_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{"answers": answers, "updated_at": now}),
		}).
		Create(c).Error
	if err != nil {
		return nil, err
	}
	return GetCareLogByDate(ctx, db, petID, date)
}

// GetCareLogByDate fetches the check-in for a specific calendar day, or
// ErrNotFound when no check-in exists for that day.
func GetCareLogByDate(ctx context.Context, db *gorm.DB, petID, date string) (*domain.CareLog, error) {
	var c domain.CareLog
	err := db.WithContext(ctx).
		Where("pet_id = ? AND date = ?", petID, date).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetDiagAnswers stores the questionnaire answers on an existing day row,
// creating the row first when the day has no check-in yet. The diagnosis can
// arrive before the daily check-in, so a missing row is not an error.
func SetDiagAnswers(ctx context.Context, db *gorm.DB, petID, date, diagAnswers string) (*domain.CareLog, error) {
	res := db.WithContext(ctx).
		Model(&domain.CareLog{}).
		Where("pet_id = ? AND date = ?", petID, date).
		Update("diag_answers", diagAnswers)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		now := time.Now().UTC()
		c := &domain.CareLog{
			ID:          uuid.NewString(),
			PetID:       petID,
			Date:        date,
			DiagAnswers: diagAnswers,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.WithContext(ctx).Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil
	}
	return GetCareLogByDate(ctx, db, petID, date)
}

// ListCareLogsByMonth returns all check-ins for petID within the month given
// as "YYYY-MM", ordered by date ascending.
func ListCareLogsByMonth(ctx context.Context, db *gorm.DB, petID, month string) ([]domain.CareLog, error) {
	var out []domain.CareLog
	err := db.WithContext(ctx).
		Where("pet_id = ? AND date LIKE ?", petID, month+"%").
		Order("date asc").
		Find(&out).Error
	return out, err
}

// CountCareLogsOnDate returns how many of the given pets have a check-in on
// the given day. The reminder job uses this to skip users who already
// checked in today.
func CountCareLogsOnDate(ctx context.Context, db *gorm.DB, petIDs []string, date string) (int64, error) {
	if len(petIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.CareLog{}).
		Where("pet_id IN ? AND date = ?", petIDs, date).
		Count(&total).Error
	return total, err
}
