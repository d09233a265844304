package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drillforge/drillforge/internal/api"
	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/config"
	"github.com/drillforge/drillforge/internal/db"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/repository"
	"github.com/drillforge/drillforge/internal/repository/postgres"
	"github.com/drillforge/drillforge/internal/repository/sqlite"
	"github.com/drillforge/drillforge/internal/services"
	"github.com/drillforge/drillforge/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("DrillForge Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl_hours=%d", cfg.TokenTTLHours)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	// Open database and build driver-specific repositories
	sqlDB, drillRepo, attemptRepo, userRepo, err := openStore(cfg)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		sqlDB.Close()
	}()

	// Initialize worker pool
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)

	// Initialize services
	drillService := services.NewDrillService(drillRepo)
	statsService := services.NewStatsService(attemptRepo)
	attemptService := services.NewAttemptService(drillRepo, attemptRepo, statsService, statsPool)
	userService := services.NewUserService(userRepo)

	authService := auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	srv := &api.Server{
		DrillService:   drillService,
		AttemptService: attemptService,
		StatsService:   statsService,
		UserService:    userService,
		Auth:           authService,
		DB:             sqlDB,
		CORSOrigins:    cfg.CORSOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	log.Debug("stopping stats pool")
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("DrillForge Server Stopped")
	log.Info("===========================================")
}

// openStore opens the configured database and builds the matching set of
// repositories. Both drivers satisfy the same interfaces, so everything
// above this call is driver-agnostic.
func openStore(cfg config.Config) (*sql.DB, repository.DrillRepository, repository.AttemptRepository, repository.UserRepository, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		sqlDB, err := db.OpenPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return sqlDB,
			postgres.NewDrillRepository(sqlDB),
			postgres.NewAttemptRepository(sqlDB),
			postgres.NewUserRepository(sqlDB),
			nil
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return database.DB,
			sqlite.NewDrillRepository(database.DB),
			sqlite.NewAttemptRepository(database.DB),
			sqlite.NewUserRepository(database.DB),
			nil
	}
}
