package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/cash_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/cash_ledger/internal/adapters/database/pgsql"
	"github.com/SscSPs/cash_ledger/internal/adapters/notify"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cash_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/core/services"
	"github.com/SscSPs/cash_ledger/internal/handlers"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/SscSPs/cash_ledger/internal/platform/calendar"
	"github.com/SscSPs/cash_ledger/internal/platform/config"
	"github.com/SscSPs/cash_ledger/internal/platform/lock"
	"github.com/SscSPs/cash_ledger/internal/platform/scheduler"
	"github.com/SscSPs/cash_ledger/internal/platform/txscope"
	"github.com/SscSPs/cash_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Cash Ledger API
// @version 1.0
// @description Account cash balances, withdrawal requests and the daily settlement batch.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, closeNotifier := newNotifier(ctx, cfg, logger)
	defer closeNotifier()

	clock := calendar.NewClock(cfg.BusinessDay)
	logger.Info("Business day set", slog.String("business_day", clock.Today().Format(domain.DayLayout)))

	scope := txscope.New(lock.NewRegistry(), repos.TxManager)
	container := services.NewServiceContainer(cfg, repos, scope, clock, notifier)

	if err := services.SeedOpeningBalances(ctx, scope, container.Cashflow, clock, cfg.InitialBalances); err != nil {
		return err
	}

	withdrawLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, withdrawLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var sched *scheduler.Scheduler
	if cfg.BatchCron != "" {
		sched, err = scheduler.New(cfg.BatchCron, container.Batch, logger)
		if err != nil {
			return err
		}
		sched.Start()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sched != nil {
			if err := sched.Stop(shutdownCtx); err != nil {
				logger.Warn("Batch still running at shutdown", slog.String("error", err.Error()))
			}
		}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore connects to PostgreSQL and migrates it, or falls back to the
// in-memory store when no database URL is configured.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using the in-memory store; data is lost on exit")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

// newNotifier queues notifications in Redis when configured and reachable,
// and logs them otherwise.
func newNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.Notifier, func()) {
	if cfg.RedisAddr == "" {
		return notify.LogNotifier{}, func() {}
	}
	rdb, err := notify.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis connection failed, continuing with log notifications", slog.String("error", err.Error()))
		return notify.LogNotifier{}, func() {}
	}
	logger.Info("Redis connection established", slog.String("queue", cfg.NotifyQueue))
	return notify.NewRedisNotifier(rdb, cfg.NotifyQueue), func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}
}
