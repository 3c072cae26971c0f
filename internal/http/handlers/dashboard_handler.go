package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

// Dashboard godoc
// @ID          dashboard
// @Summary     Home-screen health summary
// @Description Builds the dashboard for one pet from its recent snapshot history: risk score, level, insights, and per-metric trend charts. With no history the empty state (score 0, level "safe") is returned.
// @Tags        Dashboard
// @Produce     json
//
// @Param       id  path  string  true  "Pet ID"
//
// @Success     200  {object}  services.Summary
// @Failure     404  {object}  handlers.ErrorResponse "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id}/dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	sum, err := h.dashSvc.Summary(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "pet not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}
