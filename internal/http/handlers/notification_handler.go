package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/services"
	"github.com/catlinkdev/go-catcare-backend/internal/utils"
)

// NotificationsResponse is the notification center payload: the recent window
// of notifications plus the unread badge count.
type NotificationsResponse struct {
	Items       []domain.Notification `json:"items"`
	UnreadCount int64                 `json:"unreadCount" example:"2"`
}

func (h *Handlers) notifError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotificationNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "notification not found")
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     Recent notifications
// @Description Returns notifications from the last 7 days, newest first, with the unread count.
// @Tags        Notifications
// @Produce     json
//
// @Param       limit  query  int  false  "Cap the number of items returned"
//
// @Success     200  {object}  handlers.NotificationsResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	items, unread, err := h.notifSvc.ListRecent(c.Request.Context(), userID(c))
	if err != nil {
		h.notifError(c, err)
		return
	}
	if items == nil {
		items = []domain.Notification{}
	}
	if limit := utils.AtoiDefault(c.Query("limit"), 0); limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	ok(c, http.StatusOK, NotificationsResponse{Items: items, UnreadCount: unread})
}

// ReadNotification godoc
// @ID          readNotification
// @Summary     Mark one notification read
// @Description Marks the notification read. Safe to repeat; an already-read notification stays read.
// @Tags        Notifications
//
// @Param       id  path  string  true  "Notification ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id}/read [post]
func (h *Handlers) ReadNotification(c *gin.Context) {
	if err := h.notifSvc.MarkRead(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		h.notifError(c, err)
		return
	}
	noContent(c)
}

// ReadAllNotifications godoc
// @ID          readAllNotifications
// @Summary     Mark all notifications read
// @Tags        Notifications
//
// @Success     204  {string}  string "No Content"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications/read-all [post]
func (h *Handlers) ReadAllNotifications(c *gin.Context) {
	if err := h.notifSvc.MarkAllRead(c.Request.Context(), userID(c)); err != nil {
		h.notifError(c, err)
		return
	}
	noContent(c)
}

// DeleteNotification godoc
// @ID          deleteNotification
// @Summary     Delete a notification
// @Tags        Notifications
//
// @Param       id  path  string  true  "Notification ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id} [delete]
func (h *Handlers) DeleteNotification(c *gin.Context) {
	if err := h.notifSvc.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		h.notifError(c, err)
		return
	}
	noContent(c)
}
