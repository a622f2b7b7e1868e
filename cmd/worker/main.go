package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/sudepo/sudepo/internal/analytics"
	"github.com/sudepo/sudepo/internal/app"
	"github.com/sudepo/sudepo/internal/platform/cache"
	"github.com/sudepo/sudepo/internal/platform/db"
	"github.com/sudepo/sudepo/internal/store"
	"github.com/sudepo/sudepo/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	// The worker keeps its own read-only view of the entities for report
	// rendering, fed by the same realtime channel as the API server.
	backend := store.NewPostgres(pool)
	feed := store.NewRedisFeed(redisClient)
	entityStore := store.New(backend, feed, logger)
	if err := entityStore.Load(ctx); err != nil {
		logger.Error("load entity store", slog.Any("error", err))
		os.Exit(1)
	}
	go func() {
		if err := entityStore.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("store feed", slog.Any("error", err))
		}
	}()

	analyticsService := analytics.NewService(entityStore)
	notifyHandler := jobs.NewNotifyHandler(redisClient, logger)
	snapshotJob := jobs.NewReportSnapshotJob(analyticsService, redisClient, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeOrderNotify, Handler: notifyHandler.Handle},
			{Type: jobs.TaskTypeReportSnapshot, Handler: snapshotJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: jobs.ReportSnapshotCron, Task: jobs.NewReportSnapshotTask()},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
