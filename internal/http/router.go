// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/blob"
	"github.com/catlinkdev/go-catcare-backend/internal/config"
	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/http/handlers"
	"github.com/catlinkdev/go-catcare-backend/internal/http/middleware"
	"github.com/catlinkdev/go-catcare-backend/internal/push"
	"github.com/catlinkdev/go-catcare-backend/internal/repo"
	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

// petRepoShim adapts the repository free functions to the services.PetRepo
// interface expected by the PetService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type petRepoShim struct{}

// CreatePet proxies repo.CreatePet.
func (petRepoShim) CreatePet(ctx context.Context, db *gorm.DB, userID string, p *domain.Pet) (*domain.Pet, error) {
	return repo.CreatePet(ctx, db, userID, p)
}

// ListPets proxies repo.ListPets.
func (petRepoShim) ListPets(ctx context.Context, db *gorm.DB, userID string) ([]domain.Pet, error) {
	return repo.ListPets(ctx, db, userID)
}

// GetPet proxies repo.GetPet.
func (petRepoShim) GetPet(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Pet, error) {
	return repo.GetPet(ctx, db, id, userID)
}

// UpdatePet proxies repo.UpdatePet.
func (petRepoShim) UpdatePet(ctx context.Context, db *gorm.DB, id, userID string, updates map[string]any) error {
	return repo.UpdatePet(ctx, db, id, userID, updates)
}

// DeletePet proxies repo.DeletePet.
func (petRepoShim) DeletePet(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeletePet(ctx, db, id, userID)
}

// careRepoShim adapts the care log repository functions to services.CareRepo.
type careRepoShim struct{}

func (careRepoShim) UpsertCareLog(ctx context.Context, db *gorm.DB, petID, date, answers string) (*domain.CareLog, error) {
	return repo.UpsertCareLog(ctx, db, petID, date, answers)
}

func (careRepoShim) GetCareLogByDate(ctx context.Context, db *gorm.DB, petID, date string) (*domain.CareLog, error) {
	return repo.GetCareLogByDate(ctx, db, petID, date)
}

func (careRepoShim) SetDiagAnswers(ctx context.Context, db *gorm.DB, petID, date, diagAnswers string) (*domain.CareLog, error) {
	return repo.SetDiagAnswers(ctx, db, petID, date, diagAnswers)
}

func (careRepoShim) ListCareLogsByMonth(ctx context.Context, db *gorm.DB, petID, month string) ([]domain.CareLog, error) {
	return repo.ListCareLogsByMonth(ctx, db, petID, month)
}

// userRepoShim adapts the user repository functions to services.UserRepo.
type userRepoShim struct{}

func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, sub, email, name string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, sub, email, name)
}

func (userRepoShim) GetUserBySub(ctx context.Context, db *gorm.DB, sub string) (*domain.User, error) {
	return repo.GetUserBySub(ctx, db, sub)
}

func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

func (userRepoShim) UpdateUser(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return repo.UpdateUser(ctx, db, id, updates)
}

func (userRepoShim) SetPushToken(ctx context.Context, db *gorm.DB, id, token, deviceInfo string) error {
	return repo.SetPushToken(ctx, db, id, token, deviceInfo)
}

func (userRepoShim) SoftDeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return repo.SoftDeleteUser(ctx, db, id)
}

// notifRepoShim adapts the notification repository functions to
// services.NotificationRepo.
type notifRepoShim struct{}

func (notifRepoShim) CreateNotification(ctx context.Context, db *gorm.DB, userID string, n *domain.Notification) (*domain.Notification, error) {
	return repo.CreateNotification(ctx, db, userID, n)
}

func (notifRepoShim) ListRecentNotifications(ctx context.Context, db *gorm.DB, userID string, window time.Duration) ([]domain.Notification, error) {
	return repo.ListRecentNotifications(ctx, db, userID, window)
}

func (notifRepoShim) CountUnread(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountUnread(ctx, db, userID)
}

func (notifRepoShim) MarkNotificationRead(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.MarkNotificationRead(ctx, db, id, userID)
}

func (notifRepoShim) MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, userID string) error {
	return repo.MarkAllNotificationsRead(ctx, db, userID)
}

func (notifRepoShim) DeleteNotification(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteNotification(ctx, db, id, userID)
}

func (notifRepoShim) NotificationExists(ctx context.Context, db *gorm.DB, userID, ntype, refKey string, day time.Time) (bool, error) {
	return repo.NotificationExists(ctx, db, userID, ntype, refKey, day)
}

// Deps carries the externally constructed infrastructure the router wires
// into services. Nil-able fields degrade gracefully: without History the
// profile snapshots are skipped, without Uploads the upload endpoints answer
// 503, without Verifier the API runs in development passthrough mode.
type Deps struct {
	DB       *gorm.DB
	History  services.HistoryWriter
	Recent   services.HistoryReader
	Uploads  *blob.Store
	Push     services.PushSender
	Verifier middleware.ClaimsVerifier
}

// Services groups the constructed application services so main can reuse
// them (e.g. for the cron jobs) instead of rebuilding its own.
type Services struct {
	Users  *services.UserService
	Pets   *services.PetService
	Care   *services.CareService
	Dash   *services.DashboardService
	Notifs *services.NotificationService
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the constructed services. It configures observability
// (tracing, metrics), idempotency and rate limiting, CORS and security
// headers, health and metrics endpoints, and then mounts the versioned
// public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter + gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
//  10. Bearer auth on the API group
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) *Services {
	r.HandleMethodNotAllowed = true
	db := deps.DB

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-Api-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (10 MiB for photo uploads) + compression
	r.Use(limitBody(10 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, petID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, petID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (behind a flag; docs are registered by the docs package import in main)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/stores
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	userSvc := services.NewUserService(db, userRepoShim{}, push.IsExpoToken)
	petSvc := services.NewPetService(db, petRepoShim{}, deps.History)
	careSvc := services.NewCareService(db, careRepoShim{}, petSvc, deps.History, loc)
	dashSvc := services.NewDashboardService(petSvc, deps.Recent, cfg.DashboardDays)
	notifSvc := services.NewNotificationService(db, notifRepoShim{}, deps.Push)

	h := handlers.New(petSvc, careSvc, dashSvc, userSvc, notifSvc, uploadsOrNil(deps.Uploads))

	// Public API (authenticated)
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.BearerAuth(deps.Verifier, userSvc))
	{
		// Users
		api.GET("/users/me", h.Me)
		api.PUT("/users/me", h.UpdateMe)
		api.DELETE("/users/me", h.DeleteAccount)
		api.PUT("/users/me/push-token", h.RegisterPushToken)
		api.PUT("/users/me/alarm-settings", h.UpdateAlarmSettings)

		// Pets
		api.POST("/pets", h.CreatePet)
		api.GET("/pets", h.ListPets)
		api.GET("/pets/:id", h.GetPet)
		api.PUT("/pets/:id", h.UpdatePet)
		api.DELETE("/pets/:id", h.DeletePet)

		// Care logs
		api.GET("/care/questions", h.CareQuestions)
		api.POST("/pets/:id/care", h.SubmitCheckIn)
		api.GET("/pets/:id/care/today", h.TodayCheckIn)
		api.POST("/pets/:id/care/diagnosis", h.SubmitDiag)
		api.GET("/pets/:id/care/monthly", h.MonthlyDays)
		api.GET("/pets/:id/care/monthly/stats", h.MonthlyStats)

		// Dashboard
		api.GET("/pets/:id/dashboard", h.Dashboard)

		// Notifications
		api.GET("/notifications", h.ListNotifications)
		api.POST("/notifications/:id/read", h.ReadNotification)
		api.POST("/notifications/read-all", h.ReadAllNotifications)
		api.DELETE("/notifications/:id", h.DeleteNotification)

		// Uploads
		api.POST("/uploads", h.UploadPhoto)
		api.GET("/uploads/presign", h.PresignPhoto)
	}

	return &Services{
		Users:  userSvc,
		Pets:   petSvc,
		Care:   careSvc,
		Dash:   dashSvc,
		Notifs: notifSvc,
	}
}

// uploadsOrNil avoids handing the handlers a non-nil interface wrapping a nil
// *blob.Store.
func uploadsOrNil(s *blob.Store) handlers.UploadStore {
	if s == nil {
		return nil
	}
	return s
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
