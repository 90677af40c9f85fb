// Package autoupdate keeps the current season fresh: a periodic sweep
// refreshes the schedule and ingests newly final games. Runs as a Go
// ticker inside the API process, so no external scheduler is needed.
package autoupdate

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/ingest"
	"github.com/rinkstat/rinkstat-data/internal/nhl"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
)

// Config controls the autoupdate sweep. Zero interval disables it.
type Config struct {
	Interval time.Duration
	Workers  int
	MaxGames int // per sweep, 0 = unlimited
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 30 * time.Minute,
		Workers:  2,
		MaxGames: 50,
	}
}

// Start runs the sweep loop until ctx is cancelled. Intended to be called
// with `go`. The first sweep runs immediately so a fresh deployment does
// not wait a full interval for data.
func Start(ctx context.Context, pool *pgxpool.Pool, client *nhl.Client, cfg Config, logger *slog.Logger) {
	if cfg.Interval <= 0 {
		logger.Info("Autoupdate disabled")
		return
	}
	logger.Info("Autoupdate started", "interval", cfg.Interval, "workers", cfg.Workers)

	sweep(ctx, pool, client, cfg, logger)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sweep(ctx, pool, client, cfg, logger)
		case <-ctx.Done():
			logger.Info("Autoupdate stopped")
			return
		}
	}
}

func sweep(ctx context.Context, pool *pgxpool.Pool, client *nhl.Client, cfg Config, logger *slog.Logger) {
	season := schedule.CurrentSeason(time.Now())

	if _, err := ingest.Schedule(ctx, pool, client, season, logger); err != nil {
		logger.Error("Autoupdate schedule refresh failed", "season", season, "error", err)
		return
	}

	result := ingest.Season(ctx, pool, client, season, cfg.Workers, cfg.MaxGames, logger)
	if result.GamesFound > 0 {
		logger.Info("Autoupdate sweep finished", "season", season, "summary", result.Summary())
	}
}
