package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/catlinkdev/go-catcare-backend/internal/config"
	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:routerdb_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// schema so handlers don't explode on list endpoints
	if err := db.AutoMigrate(&domain.User{}, &domain.Pet{}, &domain.CareLog{}, &domain.Notification{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// noopHist satisfies both history interfaces without DynamoDB.
type noopHist struct{}

func (noopHist) PutRecord(ctx context.Context, rec domain.DailyRecord) error { return nil }
func (noopHist) RecentHistory(ctx context.Context, petID string, limit int) ([]domain.DailyRecord, error) {
	return nil, nil
}

func testCfg() config.Config {
	return config.Config{
		APIBasePath:   "/api/v1",
		RateRPS:       100,
		RateBurst:     10,
		DashboardDays: 7,
		Timezone:      "Asia/Seoul",
		CORS:          config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:      config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:          config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, Deps{DB: db, History: noopHist{}, Recent: noopHist{}}, testCfg())

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	cfg := testCfg()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}

	RegisterRoutes(r, Deps{DB: db, History: noopHist{}, Recent: noopHist{}}, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

// End-to-end through the real router: register a pet, check in, read the
// dashboard. Dev passthrough auth with X-User-Sub provisions the account.
func TestRegisterRoutes_PetFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)

	RegisterRoutes(r, Deps{DB: db, History: noopHist{}, Recent: noopHist{}}, testCfg())

	do := func(method, path, body string) *httptest.ResponseRecorder {
		t.Helper()
		var rd io.Reader
		if body != "" {
			rd = bytes.NewBufferString(body)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, rd)
		req.Header.Set("X-User-Sub", "sub-router-test")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept-Encoding", "identity")
		r.ServeHTTP(w, req)
		return w
	}

	// Register a pet
	w := do(http.MethodPost, "/api/v1/pets", `{"name":"나비","weight":4.2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create pet -> %d body=%s", w.Code, w.Body.String())
	}
	var pet domain.Pet
	if err := json.Unmarshal(w.Body.Bytes(), &pet); err != nil {
		t.Fatalf("json: %v", err)
	}

	// Daily check-in
	w = do(http.MethodPost, "/api/v1/pets/"+pet.ID+"/care", `{"food":"평소만큼","water":"평소만큼","weight":"4.2","stool":"정상","urine":"정상"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("check-in -> %d body=%s", w.Code, w.Body.String())
	}

	// Dashboard answers even without snapshot history (empty state)
	w = do(http.MethodGet, "/api/v1/pets/"+pet.ID+"/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard -> %d body=%s", w.Code, w.Body.String())
	}

	// Another subject cannot see the pet
	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pets/"+pet.ID, nil)
	req.Header.Set("X-User-Sub", "someone-else")
	req.Header.Set("Accept-Encoding", "identity")
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("foreign pet -> %d", w2.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	// Under the cap
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("tiny"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("small body -> %d", w.Code)
	}

	// Over the cap
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("waaaaay too large for the cap"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("big body -> %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := groupWithPrefix(r, "")
	if g.BasePath() != "/" {
		t.Fatalf("empty prefix base = %q", g.BasePath())
	}
	g = groupWithPrefix(r, "/api/v1")
	if g.BasePath() != "/api/v1" {
		t.Fatalf("prefixed base = %q", g.BasePath())
	}
}
