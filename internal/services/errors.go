// Package services defines the business logic for users, pets, daily care
// check-ins, the health dashboard, and notifications. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPetNotFound indicates that the requested pet does not exist or is
	// not accessible to the current user.
	ErrPetNotFound = errors.New("pet not found")

	// ErrInvalidPet is returned when a pet payload fails validation
	// (missing name, out-of-range weight, unknown ordinal values).
	ErrInvalidPet = errors.New("invalid pet profile")

	// ErrInvalidCheckIn is returned when a check-in payload carries no
	// recognizable answers.
	ErrInvalidCheckIn = errors.New("invalid check-in answers")

	// ErrInvalidMonth is returned when a month filter is not "YYYY-MM".
	ErrInvalidMonth = errors.New("month must be YYYY-MM")

	// ErrInvalidPushToken is returned when a device registers a token that
	// is not an Expo push token.
	ErrInvalidPushToken = errors.New("invalid push token")

	// ErrNotificationNotFound indicates that the requested notification does
	// not exist or is not accessible to the current user.
	ErrNotificationNotFound = errors.New("notification not found")
)
