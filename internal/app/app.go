package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiodesk/studiodesk/internal/config"
	"github.com/studiodesk/studiodesk/internal/notify"
	"github.com/studiodesk/studiodesk/internal/postgres"
	"github.com/studiodesk/studiodesk/internal/redis"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
	redisrepo "github.com/studiodesk/studiodesk/internal/repository/redis"
	"github.com/studiodesk/studiodesk/internal/service"
	httpgin "github.com/studiodesk/studiodesk/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", cfg.Limits.BookingCreateMax, cfg.Limits.BookingCreateWindow)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	quotationRepo := redisrepo.NewQuotationRepo(rdb)
	prefStore := redisrepo.NewPreferenceStore(rdb)

	// Notifications go to the log and to the per-user Redis channel
	// the dashboard subscribes to via /notifications/stream.
	pubsub := redisrepo.NewNotificationsPubSub(rdb)
	notifier := notify.Multi{
		notify.NewLogNotifier(logger),
		pubsub,
	}

	// Initialize services
	services := service.NewServices(store, cache, notifier, limiter, quotationRepo, prefStore, service.Config{})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, pubsub, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
