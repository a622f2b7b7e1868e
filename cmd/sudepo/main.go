package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/sudepo/sudepo/internal/analytics"
	"github.com/sudepo/sudepo/internal/app"
	"github.com/sudepo/sudepo/internal/auth"
	"github.com/sudepo/sudepo/internal/categories"
	"github.com/sudepo/sudepo/internal/couriers"
	"github.com/sudepo/sudepo/internal/customers"
	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/inventory"
	"github.com/sudepo/sudepo/internal/observability"
	"github.com/sudepo/sudepo/internal/orders"
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

	backend := store.NewPostgres(pool)
	if err := backend.Migrate(ctx); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	notifier := jobs.NewNotifier(asynqClient)

	feed := store.NewRedisFeed(redisClient)
	entityStore := store.New(backend, feed, logger,
		store.WithPersistTimeout(cfg.PersistTimeout),
		store.WithRemoteOrderHook(func(o domain.Order) {
			// Orders arriving over the feed (marketplace relays, AI bots)
			// get the same office notification as local ones.
			if err := notifier.NotifyNewOrder(context.Background(), o); err != nil {
				logger.Warn("notify remote order", slog.Any("error", err))
			}
		}),
	)
	if err := entityStore.Load(ctx); err != nil {
		logger.Error("load entity store", slog.Any("error", err))
		os.Exit(1)
	}

	creds, err := auth.ParseStaticUsers(cfg.StaticUsers)
	if err != nil {
		logger.Error("parse static users", slog.Any("error", err))
		os.Exit(1)
	}
	sessionManager := auth.NewSessionManager(redisClient, "sudepo_session", cfg.SessionTTL, cfg.IsProduction())
	authService := auth.NewService(creds)
	authHandler := auth.NewHandler(logger, authService, sessionManager)
	authMW := auth.Middleware{Sessions: sessionManager, Logger: logger}

	metrics := observability.NewMetrics()

	customerService := customers.NewService(entityStore)
	courierService := couriers.NewService(entityStore)
	orderService := orders.NewService(entityStore, customerService, notifier, logger)
	inventoryService := inventory.NewService(entityStore)
	categoryService := categories.NewService(entityStore)
	analyticsService := analytics.NewService(entityStore)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Auth:              authMW,
		AuthHandler:       authHandler,
		OrdersHandler:     orders.NewHandler(logger, orderService, metrics),
		CouriersHandler:   couriers.NewHandler(logger, courierService),
		CustomersHandler:  customers.NewHandler(logger, customerService),
		InventoryHandler:  inventory.NewHandler(logger, inventoryService),
		CategoriesHandler: categories.NewHandler(logger, categoryService),
		AnalyticsHandler:  analytics.NewHandler(logger, analyticsService),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		err := entityStore.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppRequestTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("bye")
}
