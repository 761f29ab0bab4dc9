package main

import (
	"context"
	"log"
	"time"

	"github.com/peerlearn/tutoring-api/internal/repository"
	"github.com/peerlearn/tutoring-api/internal/service"
	"github.com/peerlearn/tutoring-api/pkg/config"
	"github.com/peerlearn/tutoring-api/pkg/database"
	"github.com/peerlearn/tutoring-api/pkg/jobs"
	"github.com/peerlearn/tutoring-api/pkg/logger"
	"github.com/peerlearn/tutoring-api/pkg/mailer"
)

// One-shot reminder sweep, meant to be run daily from cron. Finds
// sessions scheduled inside the configured lead window and emails both
// participants.
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

	jobRepo := repository.NewJobRepository(db)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	notifications.Queue().Start(ctx)

	reminders := service.NewReminderService(jobRepo, profileRepo, notifications, cfg.Reminders.LeadTime, logr)
	result, err := reminders.Sweep(ctx)

	notifications.Queue().Drain()

	if err != nil {
		logr.Sugar().Fatalw("reminder sweep failed", "error", err)
	}
	logr.Sugar().Infow("done", "jobs_found", result.JobsFound, "sent", result.Sent, "failed", result.Failed)
}
