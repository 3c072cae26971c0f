// Package services – UserService
//
// This file implements the UserService, which manages the account behind the
// identity-provider subject: lazy provisioning on first authenticated
// request, profile reads/updates, device push-token registration, reminder
// preferences, and account withdrawal (soft delete).
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, db *gorm.DB, sub, email, name string) (*domain.User, error)
	GetUserBySub(ctx context.Context, db *gorm.DB, sub string) (*domain.User, error)
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error
	SetPushToken(ctx context.Context, db *gorm.DB, id, token, deviceInfo string) error
	SoftDeleteUser(ctx context.Context, db *gorm.DB, id string) error
}

// TokenChecker validates a push token format before it is stored.
type TokenChecker func(token string) bool

// UserService provides account-level operations.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo

	// CheckToken gates push-token registration; nil accepts everything.
	CheckToken TokenChecker
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo, check TokenChecker) *UserService {
	return &UserService{DB: db, Repo: r, CheckToken: check}
}

// GetOrCreate resolves the account for an identity-provider subject,
// provisioning a row on first sight. Email and name seed the new row only;
// later profile edits are authoritative.
func (s *UserService) GetOrCreate(ctx context.Context, sub, email, name string) (*domain.User, error) {
	u, err := s.Repo.GetUserBySub(ctx, s.DB, sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u, err = s.Repo.CreateUser(ctx, s.DB, sub, email, name)
	if err == nil {
		return u, nil
	}
	// Lost a provisioning race: the row exists now.
	if existing, getErr := s.Repo.GetUserBySub(ctx, s.DB, sub); getErr == nil {
		return existing, nil
	}
	return nil, err
}

// Get returns the account by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// ProfileUpdate carries the editable account fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name         *string
	Nickname     *string
	PhoneNumber  *string
	Address      *string
	ProfilePhoto *string
}

// UpdateProfile applies a partial profile edit.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error) {
	updates := map[string]any{}
	if upd.Name != nil {
		updates["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Nickname != nil {
		updates["nickname"] = strings.TrimSpace(*upd.Nickname)
	}
	if upd.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*upd.PhoneNumber)
	}
	if upd.Address != nil {
		updates["address"] = strings.TrimSpace(*upd.Address)
	}
	if upd.ProfilePhoto != nil {
		updates["profile_photo"] = strings.TrimSpace(*upd.ProfilePhoto)
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateUser(ctx, s.DB, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// RegisterPushToken stores the device push token. An empty token clears the
// registration (device logout); a non-empty token must pass CheckToken.
func (s *UserService) RegisterPushToken(ctx context.Context, id, token, deviceInfo string) error {
	token = strings.TrimSpace(token)
	if token != "" && s.CheckToken != nil && !s.CheckToken(token) {
		return ErrInvalidPushToken
	}
	err := s.Repo.SetPushToken(ctx, s.DB, id, token, deviceInfo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

// SetAlarms updates the reminder preferences. config is the client-owned
// JSON document; pass "" to keep the stored one.
func (s *UserService) SetAlarms(ctx context.Context, id string, enabled bool, config string) error {
	updates := map[string]any{"alarms_enabled": enabled}
	if strings.TrimSpace(config) != "" {
		updates["alarm_config"] = config
	}
	err := s.Repo.UpdateUser(ctx, s.DB, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Withdraw soft-deletes the account. The push token is cleared first so the
// reminder jobs stop addressing the device immediately.
func (s *UserService) Withdraw(ctx context.Context, id string) error {
	if err := s.Repo.SetPushToken(ctx, s.DB, id, "", ""); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	err := s.Repo.SoftDeleteUser(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
