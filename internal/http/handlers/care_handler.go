package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

//
// DTOs
//

// CheckInRequest is the daily check-in payload. Values are the Korean answer
// labels shown in the app (e.g. "평소만큼", "설사"); the service canonicalizes
// them before storing.
type CheckInRequest struct {
	Food   string `json:"food"   example:"평소만큼"`
	Water  string `json:"water"  example:"평소보다 적게"`
	Weight string `json:"weight" example:"4.2"`
	Stool  string `json:"stool"  example:"정상"`
	Urine  string `json:"urine"  example:"정상"`
}

// DiagRequest carries the free-form diagnostic questionnaire answers as a raw
// JSON document owned by the mobile client.
type DiagRequest struct {
	Answers string `json:"answers" binding:"required" example:"{\"q1\":\"yes\"}"`
}

// CompletedDaysResponse lists the days of a month that have a finished
// check-in.
type CompletedDaysResponse struct {
	Month string   `json:"month" example:"2025-06"`
	Days  []string `json:"days"`
}

func (h *Handlers) careError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCheckIn), errors.Is(err, services.ErrInvalidMonth):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrPetNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "pet not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCheckInFailed, err.Error())
	}
}

//
// Handlers
//

// CareQuestions godoc
// @ID          careQuestions
// @Summary     Daily check-in question bank
// @Description Returns the fixed five-question daily check-in form with answer options.
// @Tags        Care
// @Produce     json
//
// @Success     200  {object}  health.QuestionBank
// @Router      /care/questions [get]
func (h *Handlers) CareQuestions(c *gin.Context) {
	ok(c, http.StatusOK, h.careSvc.Questions())
}

// SubmitCheckIn godoc
// @ID          submitCheckIn
// @Summary     Submit today's check-in
// @Description Stores the answers under today's pet-local calendar day; re-submitting the same day overwrites.
// @Tags        Care
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                   true  "Pet ID"
// @Param       body  body  handlers.CheckInRequest  true  "Answers"
//
// @Success     200  {object}  domain.CareLog
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/care [post]
func (h *Handlers) SubmitCheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	log, err := h.careSvc.CheckIn(c.Request.Context(), userID(c), c.Param("id"), services.CheckInAnswers{
		Food:   req.Food,
		Water:  req.Water,
		Weight: req.Weight,
		Stool:  req.Stool,
		Urine:  req.Urine,
	})
	if err != nil {
		h.careError(c, err)
		return
	}
	ok(c, http.StatusOK, log)
}

// TodayCheckIn godoc
// @ID          todayCheckIn
// @Summary     Fetch today's check-in
// @Description Returns today's care log for the pet, or an empty body (200, null) when nothing was submitted yet.
// @Tags        Care
// @Produce     json
//
// @Param       id  path  string  true  "Pet ID"
//
// @Success     200  {object}  domain.CareLog
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/care/today [get]
func (h *Handlers) TodayCheckIn(c *gin.Context) {
	log, err := h.careSvc.TodayLog(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.careError(c, err)
		return
	}
	ok(c, http.StatusOK, log)
}

// SubmitDiag godoc
// @ID          submitDiag
// @Summary     Submit diagnostic questionnaire answers
// @Description Attaches the questionnaire answers to today's care log (creating one when the check-in hasn't happened yet).
// @Tags        Care
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                true  "Pet ID"
// @Param       body  body  handlers.DiagRequest  true  "Raw answers JSON"
//
// @Success     200  {object}  domain.CareLog
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/care/diagnosis [post]
func (h *Handlers) SubmitDiag(c *gin.Context) {
	var req DiagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	log, err := h.careSvc.SubmitDiag(c.Request.Context(), userID(c), c.Param("id"), req.Answers)
	if err != nil {
		h.careError(c, err)
		return
	}
	ok(c, http.StatusOK, log)
}

// MonthlyDays godoc
// @ID          monthlyDays
// @Summary     Check-in calendar for a month
// @Description Lists the YYYY-MM-DD days of the given month that have a completed check-in.
// @Tags        Care
// @Produce     json
//
// @Param       id     path   string  true  "Pet ID"
// @Param       month  query  string  true  "Month (YYYY-MM)"  example(2025-06)
//
// @Success     200  {object}  handlers.CompletedDaysResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad month"
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/care/monthly [get]
func (h *Handlers) MonthlyDays(c *gin.Context) {
	month := c.Query("month")
	days, err := h.careSvc.CompletedDays(c.Request.Context(), userID(c), c.Param("id"), month)
	if err != nil {
		h.careError(c, err)
		return
	}
	if days == nil {
		days = []string{}
	}
	ok(c, http.StatusOK, CompletedDaysResponse{Month: month, Days: days})
}

// MonthlyStats godoc
// @ID          monthlyStats
// @Summary     Monthly care statistics
// @Description Aggregates the month's check-ins into counts, weight change, and completion rate.
// @Tags        Care
// @Produce     json
//
// @Param       id     path   string  true  "Pet ID"
// @Param       month  query  string  true  "Month (YYYY-MM)"  example(2025-06)
//
// @Success     200  {object}  health.MonthlyStats
// @Failure     400  {object}  handlers.ErrorResponse "Bad month"
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/care/monthly/stats [get]
func (h *Handlers) MonthlyStats(c *gin.Context) {
	stats, err := h.careSvc.MonthlyStats(c.Request.Context(), userID(c), c.Param("id"), c.Query("month"))
	if err != nil {
		h.careError(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}
