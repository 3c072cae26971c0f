package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

//
// DTOs
//

// ProfileRequest is the partial-update payload for the account profile.
// Absent fields are left unchanged.
type ProfileRequest struct {
	Name         *string `json:"name"`
	Nickname     *string `json:"nickname"`
	PhoneNumber  *string `json:"phone"`
	Address      *string `json:"address"`
	ProfilePhoto *string `json:"profilePhoto"`
}

// PushTokenRequest registers (or clears, when empty) the device push token.
type PushTokenRequest struct {
	Token      string `json:"token" example:"ExponentPushToken[xxxxxxxx]"`
	DeviceInfo string `json:"deviceInfo" example:"iPhone 15, iOS 18.2"`
}

// AlarmSettingsRequest toggles reminder delivery. Config is an opaque JSON
// document owned by the client; an empty string keeps the stored one.
type AlarmSettingsRequest struct {
	Enabled bool   `json:"enabled"`
	Config  string `json:"config"`
}

func (h *Handlers) userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, services.ErrInvalidPushToken):
		fail(c, http.StatusBadRequest, ErrCodeInvalidToken, "unrecognized push token format")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Handlers
//

// Me godoc
// @ID          me
// @Summary     Current account profile
// @Tags        Users
// @Produce     json
//
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		h.userError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateMe godoc
// @ID          updateMe
// @Summary     Edit the account profile
// @Description Applies a partial profile edit; absent fields are left unchanged.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ProfileRequest  true  "Fields to update"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/me [put]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, err := h.userSvc.UpdateProfile(c.Request.Context(), userID(c), services.ProfileUpdate{
		Name:         req.Name,
		Nickname:     req.Nickname,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		h.userError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// RegisterPushToken godoc
// @ID          registerPushToken
// @Summary     Register the device push token
// @Description Stores the Expo push token for reminder delivery. An empty token clears the stored one.
// @Tags        Users
// @Accept      json
//
// @Param       body  body  handlers.PushTokenRequest  true  "Token payload"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad token"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/me/push-token [put]
func (h *Handlers) RegisterPushToken(c *gin.Context) {
	var req PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	err := h.userSvc.RegisterPushToken(c.Request.Context(), userID(c), strings.TrimSpace(req.Token), req.DeviceInfo)
	if err != nil {
		h.userError(c, err)
		return
	}
	noContent(c)
}

// UpdateAlarmSettings godoc
// @ID          updateAlarmSettings
// @Summary     Update reminder preferences
// @Tags        Users
// @Accept      json
//
// @Param       body  body  handlers.AlarmSettingsRequest  true  "Alarm settings"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/me/alarm-settings [put]
func (h *Handlers) UpdateAlarmSettings(c *gin.Context) {
	var req AlarmSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if err := h.userSvc.SetAlarms(c.Request.Context(), userID(c), req.Enabled, req.Config); err != nil {
		h.userError(c, err)
		return
	}
	noContent(c)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Withdraw the account
// @Description Soft-deletes the account and clears the push token. Repeatable; a second call is a no-op.
// @Tags        Users
//
// @Success     204  {string}  string "No Content"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/me [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	err := h.userSvc.Withdraw(c.Request.Context(), userID(c))
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		h.userError(c, err)
		return
	}
	noContent(c)
}
