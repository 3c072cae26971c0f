package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/health"
	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

func TestCareQuestions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(nil, nil, nil, nil, nil, nil)
	r := gin.New()
	r.GET("/care/questions", h.CareQuestions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/care/questions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("questions -> %d", w.Code)
	}
	var bank health.QuestionBank
	if err := json.Unmarshal(w.Body.Bytes(), &bank); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(bank.Daily) != 5 {
		t.Fatalf("question count = %d", len(bank.Daily))
	}
}

func TestSubmitCheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Bad JSON -> 400
	{
		h := newTestHandlers(nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/pets/:id/care", h.SubmitCheckIn)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets/p1/care", bytes.NewBufferString("{bad"))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad json -> %d", w.Code)
		}
	}

	// Success: answers reach the service unmodified.
	{
		var got services.CheckInAnswers
		care := stubCareSvc{
			checkIn: func(ctx context.Context, u, p string, a services.CheckInAnswers) (*domain.CareLog, error) {
				got = a
				return &domain.CareLog{ID: "l1", PetID: p, Date: "2025-06-02"}, nil
			},
		}
		h := newTestHandlers(nil, care, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/pets/:id/care", h.SubmitCheckIn)

		body := `{"food":"평소만큼","water":"평소보다 적게","weight":"4.2","stool":"정상","urine":"정상"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets/p1/care", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("check-in -> %d body=%s", w.Code, w.Body.String())
		}
		if got.Food != "평소만큼" || got.Water != "평소보다 적게" || got.Weight != "4.2" {
			t.Fatalf("answers: %#v", got)
		}
	}

	// Empty form -> 400; unknown pet -> 404.
	{
		cases := []struct {
			err  error
			want int
		}{
			{services.ErrInvalidCheckIn, http.StatusBadRequest},
			{services.ErrPetNotFound, http.StatusNotFound},
		}
		for _, tc := range cases {
			care := stubCareSvc{
				checkIn: func(ctx context.Context, u, p string, a services.CheckInAnswers) (*domain.CareLog, error) {
					return nil, tc.err
				},
			}
			h := newTestHandlers(nil, care, nil, nil, nil, nil)
			r := gin.New()
			r.POST("/pets/:id/care", h.SubmitCheckIn)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/pets/p1/care", bytes.NewBufferString(`{"food":"x"}`))
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("%v -> %d (want %d)", tc.err, w.Code, tc.want)
			}
		}
	}
}

func TestTodayCheckIn_EmptyDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(nil, stubCareSvc{}, nil, nil, nil, nil)
	r := gin.New()
	r.GET("/pets/:id/care/today", h.TodayCheckIn)

	// No submission yet: 200 with null body, not 404.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/p1/care/today", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("today -> %d", w.Code)
	}
	if w.Body.String() != "null" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestSubmitDiag(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Missing answers field fails binding.
	{
		h := newTestHandlers(nil, nil, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/pets/:id/care/diagnosis", h.SubmitDiag)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets/p1/care/diagnosis", bytes.NewBufferString(`{}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing answers -> %d", w.Code)
		}
	}

	// Answers forwarded verbatim.
	{
		var got string
		care := stubCareSvc{
			diag: func(ctx context.Context, u, p, answers string) (*domain.CareLog, error) {
				got = answers
				return &domain.CareLog{ID: "l1", PetID: p, DiagAnswers: answers}, nil
			},
		}
		h := newTestHandlers(nil, care, nil, nil, nil, nil)
		r := gin.New()
		r.POST("/pets/:id/care/diagnosis", h.SubmitDiag)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pets/p1/care/diagnosis", bytes.NewBufferString(`{"answers":"{\"q1\":\"yes\"}"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("diag -> %d body=%s", w.Code, w.Body.String())
		}
		if got != `{"q1":"yes"}` {
			t.Fatalf("answers = %q", got)
		}
	}
}

func TestMonthlyEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Days: month echoed, nil slice becomes [].
	{
		care := stubCareSvc{
			completed: func(ctx context.Context, u, p, month string) ([]string, error) {
				if month != "2025-06" {
					t.Fatalf("month = %q", month)
				}
				return nil, nil
			},
		}
		h := newTestHandlers(nil, care, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/pets/:id/care/monthly", h.MonthlyDays)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/p1/care/monthly?month=2025-06", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("monthly -> %d", w.Code)
		}
		var out CompletedDaysResponse
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.Month != "2025-06" || out.Days == nil || len(out.Days) != 0 {
			t.Fatalf("unexpected: %#v", out)
		}
	}

	// Bad month -> 400.
	{
		care := stubCareSvc{
			monthly: func(ctx context.Context, u, p, month string) (health.MonthlyStats, error) {
				return health.MonthlyStats{}, services.ErrInvalidMonth
			},
		}
		h := newTestHandlers(nil, care, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/pets/:id/care/monthly/stats", h.MonthlyStats)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/p1/care/monthly/stats?month=junk", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad month -> %d", w.Code)
		}
	}

	// Stats happy path.
	{
		care := stubCareSvc{
			monthly: func(ctx context.Context, u, p, month string) (health.MonthlyStats, error) {
				return health.MonthlyStats{TotalDays: 12}, nil
			},
		}
		h := newTestHandlers(nil, care, nil, nil, nil, nil)
		r := gin.New()
		r.GET("/pets/:id/care/monthly/stats", h.MonthlyStats)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/p1/care/monthly/stats?month=2025-06", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("stats -> %d", w.Code)
		}
		var out health.MonthlyStats
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.TotalDays != 12 {
			t.Fatalf("total days = %d", out.TotalDays)
		}
	}
}
