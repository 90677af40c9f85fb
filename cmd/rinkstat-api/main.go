// Command rinkstat-api is the Rinkstat Data API server.
//
// Usage:
//
//	rinkstat-api
//	API_PORT=8080 rinkstat-api

// @title Rinkstat Data API
// @version 1.0.0
// @description NHL play-by-play and shift data API. Serves season schedules, shift intervals, and play-by-play events enriched with the players on ice at each event.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Rinkstat
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/rinkstat/rinkstat-data/internal/api"
	"github.com/rinkstat/rinkstat-data/internal/autoupdate"
	"github.com/rinkstat/rinkstat-data/internal/cache"
	"github.com/rinkstat/rinkstat-data/internal/config"
	"github.com/rinkstat/rinkstat-data/internal/nhl"
	"github.com/rinkstat/rinkstat-data/internal/store"

	_ "github.com/rinkstat/rinkstat-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := store.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start the background ingest sweep
	client := nhl.NewClient(nhl.Options{
		StatsBase:         cfg.StatsBaseURL,
		ChartBase:         cfg.ChartBaseURL,
		ReportBase:        cfg.ReportBaseURL,
		UserAgent:         cfg.UserAgent,
		RequestsPerMinute: cfg.FetchPerMinute,
		MaxRetries:        cfg.FetchMaxRetries,
		Timeout:           cfg.FetchTimeout,
	}, logger)
	auCfg := autoupdate.DefaultConfig()
	auCfg.Interval = cfg.AutoupdateInterval
	go autoupdate.Start(ctx, pool.Pool, client, auCfg, logger)

	// Create router
	router := api.NewRouter(pool, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Rinkstat Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
