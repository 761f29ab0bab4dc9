package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/peerlearn/tutoring-api/api/swagger"
	"github.com/peerlearn/tutoring-api/internal/handler"
	"github.com/peerlearn/tutoring-api/internal/middleware"
	"github.com/peerlearn/tutoring-api/internal/repository"
	"github.com/peerlearn/tutoring-api/internal/service"
	"github.com/peerlearn/tutoring-api/pkg/cache"
	"github.com/peerlearn/tutoring-api/pkg/config"
	"github.com/peerlearn/tutoring-api/pkg/database"
	"github.com/peerlearn/tutoring-api/pkg/export"
	"github.com/peerlearn/tutoring-api/pkg/jobs"
	"github.com/peerlearn/tutoring-api/pkg/logger"
	"github.com/peerlearn/tutoring-api/pkg/mailer"
	corsmiddleware "github.com/peerlearn/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/peerlearn/tutoring-api/pkg/middleware/requestid"
)

// @title Peer Tutoring API
// @version 1.0.0
// @description Tutoring marketplace backend: opportunities, jobs, verification and volunteer hours
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Listings.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, listings served uncached", "error", err)
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()

	oppRepo := repository.NewOpportunityRepository(db)
	jobRepo := repository.NewJobRepository(db)
	verifRepo := repository.NewVerificationRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	commRepo := repository.NewCommunicationRepository(db)

	notifications := service.NewNotificationService(
		mailer.NewSendgrid(cfg.Mail),
		commRepo,
		cfg.Notifications.Enabled,
		jobs.QueueConfig{
			Workers:    cfg.Notifications.Workers,
			MaxRetries: cfg.Notifications.MaxRetries,
			RetryDelay: cfg.Notifications.RetryDelay,
			Logger:     logr,
		},
		logr,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	notifications.Queue().Start(ctx)
	defer notifications.Queue().Stop()

	profiles := service.NewProfileService(profileRepo, logr)
	approvals := service.NewApprovalService(approvalRepo, profileRepo, notifications, validate, logr)
	opportunities := service.NewOpportunityService(oppRepo, cacheRepo, cfg.Listings.CacheTTL, validate, logr)
	lifecycle := service.NewLifecycleService(oppRepo, jobRepo, recordingRepo, verifRepo, profileRepo, approvals, commRepo, notifications, cacheRepo, validate, logr)
	verification := service.NewVerificationService(verifRepo, profileRepo, commRepo, notifications, logr)
	reports := service.NewReportService(profileRepo, verifRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	auth := service.NewAuthService(cfg.JWT.Secret)
	metrics := service.NewMetricsService()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Tutee:   handler.NewTuteeHandler(profiles, opportunities, lifecycle),
		Tutor:   handler.NewTutorHandler(profiles, opportunities, lifecycle, verification, approvals, metrics),
		Admin:   handler.NewAdminHandler(profiles, opportunities, lifecycle, verification, approvals, reports, metrics),
		Metrics: handler.NewMetricsHandler(metrics),
		Auth:    auth,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
