package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/handlers"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker_app/internal/scheduler"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Expense Tracker API
// @version 1.0
// @description Account envelopes, expenses and credits with balance enforcement.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established")

	logger.Info("Running database migrations", slog.String("path", cfg.MigrationsPath))
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	container := services.NewServiceContainer(ctx, cfg, pgsql.NewRepositoryProvider(dbPool))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecureHeaders(cfg.IsProduction),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	jobs := scheduler.New(ctx, logger, cfg.ReconcileTimeout)
	reconcileJob := scheduler.NewReconcileJob(container.Reconciliation, logger)
	if cfg.ReconcileCron != "" {
		if err := jobs.AddJob(cfg.ReconcileCron, reconcileJob); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if cfg.ReconcileOnStartup {
			if err := jobs.RunNow(reconcileJob); err != nil {
				// A failed startup check must not keep the API down.
				logger.Error("Startup reconciliation failed", slog.String("error", err.Error()))
			}
		}
		jobs.Start()
		<-gctx.Done()
		jobs.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
