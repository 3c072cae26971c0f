// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Notification model (the in-app notification center).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// CreateNotification inserts a new Notification row for userID.
func CreateNotification(ctx context.Context, db *gorm.DB, userID string, n *domain.Notification) (*domain.Notification, error) {
	n.ID = uuid.NewString()
	n.UserID = userID
	n.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// ListRecentNotifications returns the user's notifications created within
// the last `window`, newest first. The notification center only surfaces a
// rolling recent window (7 days in the app), older rows stay in storage.
func ListRecentNotifications(ctx context.Context, db *gorm.DB, userID string, window time.Duration) ([]domain.Notification, error) {
	cutoff := time.Now().UTC().Add(-window)
	var out []domain.Notification
	err := db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountUnread returns the number of unread notifications for userID.
func CountUnread(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	return total, err
}

// MarkNotificationRead flips is_read on a single notification owned by
// userID. Returns ErrNotFound if missing or not theirs. Marking an
// already-read notification succeeds (the update is idempotent).
func MarkNotificationRead(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "missing" from "already read": is_read=true rows still
		// match the WHERE, so zero affected means the row does not exist.
		var n int64
		if err := db.WithContext(ctx).
			Model(&domain.Notification{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for userID read.
func MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true}).Error
}

// DeleteNotification soft-deletes a notification owned by userID.
// Returns ErrNotFound when missing or not theirs.
func DeleteNotification(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NotificationExists reports whether a notification with the given type and
// dedupe key was created on the given UTC calendar day. The cron jobs use it
// to send at most one reminder per (user, type, day).
func NotificationExists(ctx context.Context, db *gorm.DB, userID, ntype, refKey string, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND type = ? AND ref_key = ? AND created_at >= ? AND created_at < ?",
			userID, ntype, refKey, start, end).
		Count(&n).Error
	return n > 0, err
}
