// Package services – NotificationService
//
// This file implements the NotificationService, which backs the in-app
// notification center and is the single path through which push messages
// leave the system: every delivery is persisted first, then handed to the
// push sender, so the center always reflects what was (attempted to be)
// sent. Per-day dedupe for the scheduled reminders lives here too.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/push"
)

// Notification types.
const (
	NotifSystem       = "SYSTEM"
	NotifDiagReminder = "DIAG_REMINDER"
	NotifReportReady  = "REPORT_READY"
)

// RecentWindow is how far back the notification center reaches.
const RecentWindow = 7 * 24 * time.Hour

// NotificationRepo defines the repository contract required by
// NotificationService.
type NotificationRepo interface {
	CreateNotification(ctx context.Context, db *gorm.DB, userID string, n *domain.Notification) (*domain.Notification, error)
	ListRecentNotifications(ctx context.Context, db *gorm.DB, userID string, window time.Duration) ([]domain.Notification, error)
	CountUnread(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	MarkNotificationRead(ctx context.Context, db *gorm.DB, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, userID string) error
	DeleteNotification(ctx context.Context, db *gorm.DB, id, userID string) error
	NotificationExists(ctx context.Context, db *gorm.DB, userID, ntype, refKey string, day time.Time) (bool, error)
}

// PushSender delivers messages to devices.
type PushSender interface {
	Send(msgs []push.Message) (int, error)
}

// NotificationService provides notification-center and delivery operations.
type NotificationService struct {
	DB     *gorm.DB
	Repo   NotificationRepo
	Sender PushSender // nil disables device delivery (tests, local dev)
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, r NotificationRepo, sender PushSender) *NotificationService {
	return &NotificationService{DB: db, Repo: r, Sender: sender}
}

// ListRecent returns the user's notification center entries (last 7 days,
// newest first) plus the unread count.
func (s *NotificationService) ListRecent(ctx context.Context, userID string) ([]domain.Notification, int64, error) {
	items, err := s.Repo.ListRecentNotifications(ctx, s.DB, userID, RecentWindow)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Repo.CountUnread(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead marks one notification read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	err := s.Repo.MarkNotificationRead(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

// MarkAllRead marks every unread notification read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.Repo.MarkAllNotificationsRead(ctx, s.DB, userID)
}

// Delete removes one notification from the center.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	err := s.Repo.DeleteNotification(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

// SentToday reports whether a (type, refKey) notification already went out
// to the user today. The reminder jobs call this before Notify.
func (s *NotificationService) SentToday(ctx context.Context, userID, ntype, refKey string) (bool, error) {
	return s.Repo.NotificationExists(ctx, s.DB, userID, ntype, refKey, time.Now().UTC())
}

// Notify persists a notification and, when the user has a push token and
// delivery is configured, pushes it to the device. Persistence failures are
// returned; delivery failures are logged and swallowed, the center entry is
// already durable.
func (s *NotificationService) Notify(ctx context.Context, user *domain.User, ntype, refKey, title, body string, data map[string]string) error {
	n := &domain.Notification{
		Type:   ntype,
		RefKey: refKey,
		Title:  title,
		Body:   body,
	}
	if len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			n.Data = string(raw)
		}
	}
	if _, err := s.Repo.CreateNotification(ctx, s.DB, user.ID, n); err != nil {
		return err
	}

	if s.Sender == nil || user.PushToken == "" || !user.AlarmsEnabled {
		return nil
	}
	if _, err := s.Sender.Send([]push.Message{{
		Token: user.PushToken,
		Title: title,
		Body:  body,
		Data:  data,
	}}); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("type", ntype).Msg("push delivery failed")
	}
	return nil
}
