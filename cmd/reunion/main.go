package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stripe/stripe-go/v81"

	"github.com/mahoneyreunion/reunion/internal/activity"
	"github.com/mahoneyreunion/reunion/internal/app"
	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/budget"
	"github.com/mahoneyreunion/reunion/internal/files"
	"github.com/mahoneyreunion/reunion/internal/meetings"
	"github.com/mahoneyreunion/reunion/internal/messages"
	"github.com/mahoneyreunion/reunion/internal/observability"
	"github.com/mahoneyreunion/reunion/internal/pages"
	"github.com/mahoneyreunion/reunion/internal/payments"
	"github.com/mahoneyreunion/reunion/internal/platform/cache"
	"github.com/mahoneyreunion/reunion/internal/platform/db"
	"github.com/mahoneyreunion/reunion/internal/shared"
	"github.com/mahoneyreunion/reunion/internal/tasks"
	"github.com/mahoneyreunion/reunion/internal/users"
	"github.com/mahoneyreunion/reunion/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if cfg.UsesDevSecret() && !cfg.IsDevelopment() {
		logger.Warn("SESSION_SECRET is the development default; sessions are forgeable")
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	recorder := shared.NewActivityRecorder(pool)

	// Auth wiring: JWT codec, cookie adapter, resolver, HTTP guards.
	codec := auth.NewTokenCodec(cfg.SessionSecret)
	cookies := auth.NewCookieManager(cfg.IsProduction())
	resolver := auth.NewResolver(codec, cookies)
	guard := &auth.Middleware{Resolver: resolver, Logger: logger}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, logger)
	authHandler := auth.NewHandler(logger, authService, codec, cookies, resolver)
	authHandler.OnLoginFailed(metrics.CountLoginFailure)

	// Background queue client for outbound email.
	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queueClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(pool), recorder, logger), guard)

	messagesService := messages.NewService(messages.NewRepository(pool), queueClient, recorder, cfg.ContactInbox, logger)
	messagesHandler := messages.NewHandler(logger, messagesService, guard)

	tasksHandler := tasks.NewHandler(logger, tasks.NewService(tasks.NewRepository(pool), recorder, logger), guard)
	meetingsHandler := meetings.NewHandler(logger, meetings.NewService(meetings.NewRepository(pool), recorder, logger), guard)

	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		logger.Error("minio client", slog.Any("error", err))
		os.Exit(1)
	}
	store, err := files.NewMinioStore(ctx, minioClient, cfg.MinioBucket)
	if err != nil {
		logger.Error("minio bucket", slog.Any("error", err))
		os.Exit(1)
	}
	filesHandler := files.NewHandler(logger, files.NewService(files.NewRepository(pool), store, recorder, logger), guard)

	activityHandler := activity.NewHandler(logger, activity.NewRepository(pool), guard)
	pagesHandler := pages.NewHandler(logger, pages.NewRepository(pool), guard, recorder)
	budgetHandler := budget.NewHandler(logger)

	stripe.Key = cfg.StripeAPIKey
	paymentsService := payments.NewService(payments.NewRepository(pool), payments.StripeProvider{}, queueClient, logger)
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		AuthMiddleware:  guard,
		UsersHandler:    usersHandler,
		MessagesHandler: messagesHandler,
		TasksHandler:    tasksHandler,
		MeetingsHandler: meetingsHandler,
		FilesHandler:    filesHandler,
		ActivityHandler: activityHandler,
		PagesHandler:    pagesHandler,
		BudgetHandler:   budgetHandler,
		PaymentsHandler: paymentsHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
