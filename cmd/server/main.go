// Command server runs the cat care backend: the HTTP API, the scheduled
// reminder jobs, and their shared infrastructure (SQLite, DynamoDB history,
// S3 uploads, Expo push, OpenTelemetry).
//
// Configuration is environment driven (.env is honored in development); see
// internal/config for every knob and its default.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/catlinkdev/go-catcare-backend/docs"
	"github.com/catlinkdev/go-catcare-backend/internal/auth"
	"github.com/catlinkdev/go-catcare-backend/internal/blob"
	"github.com/catlinkdev/go-catcare-backend/internal/config"
	"github.com/catlinkdev/go-catcare-backend/internal/cron"
	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/dynamo"
	httpapi "github.com/catlinkdev/go-catcare-backend/internal/http"
	"github.com/catlinkdev/go-catcare-backend/internal/http/middleware"
	"github.com/catlinkdev/go-catcare-backend/internal/observability"
	"github.com/catlinkdev/go-catcare-backend/internal/push"
	"github.com/catlinkdev/go-catcare-backend/internal/repo"
	"github.com/catlinkdev/go-catcare-backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// cronRepoShim adapts the repo free functions to the narrow interfaces the
// cron jobs consume.
type cronRepoShim struct{}

func (cronRepoShim) ListUsersWithPushToken(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsersWithPushToken(ctx, db)
}

func (cronRepoShim) ListPets(ctx context.Context, db *gorm.DB, userID string) ([]domain.Pet, error) {
	return repo.ListPets(ctx, db, userID)
}

func (cronRepoShim) GetCareLogByDate(ctx context.Context, db *gorm.DB, petID, date string) (*domain.CareLog, error) {
	return repo.GetCareLogByDate(ctx, db, petID, date)
}

// @title        Cat Care API
// @version      1.0
// @description  Backend for the cat health tracking app: pet profiles, daily care check-ins, diagnostics, dashboard, and reminders.
// @BasePath     /api/v1
func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Msg("starting catcare backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Relational store
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// Managed AWS stores. Missing credentials only disable the dependent
	// features, the API itself still serves.
	var (
		history *dynamo.Store
		diag    *dynamo.DiagStore
		uploads *blob.Store
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Warn().Err(err).Msg("aws config unavailable, history/uploads disabled")
	} else {
		ddb := dynamodb.NewFromConfig(awsCfg)
		if cfg.AWS.HistoryTable != "" {
			history = dynamo.NewStore(ddb, cfg.AWS.HistoryTable)
		}
		if cfg.AWS.DiagTable != "" {
			diag = dynamo.NewDiagStore(ddb, cfg.AWS.DiagTable)
		}
		if cfg.AWS.UploadBucket != "" {
			s3c := s3.NewFromConfig(awsCfg)
			uploads = blob.NewStore(s3c, s3.NewPresignClient(s3c), cfg.AWS.UploadBucket, cfg.AWS.PresignTTL)
		}
	}

	// Push delivery
	sender := push.NewSender(push.NewExpoClient())

	// Token verification (dev passthrough when no user pool is configured)
	var verifier middleware.ClaimsVerifier
	if cfg.Cognito.UserPoolID != "" {
		v, err := auth.NewVerifier(ctx, cfg.Cognito.Region, cfg.Cognito.UserPoolID, cfg.Cognito.ClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("cognito verifier setup failed")
		}
		verifier = v
	} else {
		log.Warn().Msg("no user pool configured, running with header auth")
	}

	// HTTP engine
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	deps := httpapi.Deps{
		DB:       db,
		Uploads:  uploads,
		Push:     sender,
		Verifier: verifier,
	}
	if history != nil {
		deps.History = history
		deps.Recent = history
	}
	svcs := httpapi.RegisterRoutes(r, deps, cfg)

	// Reminder jobs (both sweeps consult the diagnostic table)
	if cfg.Cron.Enabled && diag == nil {
		log.Warn().Msg("diagnostic table not configured, reminder jobs disabled")
	}
	if cfg.Cron.Enabled && diag != nil {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			loc = time.UTC
		}
		jobs := &cron.Jobs{
			DB:     db,
			Users:  cronRepoShim{},
			Pets:   cronRepoShim{},
			Care:   cronRepoShim{},
			Diag:   diag,
			Notifs: svcs.Notifs,
			Loc:    loc,
			Now:    time.Now,
		}
		sched, err := cron.Start(jobs, cfg.Cron.DiagReminder, cfg.Cron.ReportReady)
		if err != nil {
			log.Fatal().Err(err).Msg("cron start failed")
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
