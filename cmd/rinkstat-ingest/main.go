// Command rinkstat-ingest is the Rinkstat data ingestion CLI.
//
// Usage:
//
//	rinkstat-ingest schedule --season 2017
//	rinkstat-ingest game --season 2017 --id 20001
//	rinkstat-ingest season --season 2017 --workers 2 --max 50
//	rinkstat-ingest tracking --season 2017 --in shots.csv --out shots_onice.csv
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rinkstat/rinkstat-data/internal/config"
	"github.com/rinkstat/rinkstat-data/internal/ingest"
	"github.com/rinkstat/rinkstat-data/internal/nhl"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
	"github.com/rinkstat/rinkstat-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "rinkstat-ingest",
		Short: "NHL play-by-play and shift data ingestion CLI",
	}

	root.AddCommand(scheduleCmd())
	root.AddCommand(gameCmd())
	root.AddCommand(seasonCmd())
	root.AddCommand(trackingCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Fetch and store the season schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *store.Pool) error {
				client := buildClient(cfg)
				start := time.Now()
				n, err := ingest.Schedule(ctx, pool.Pool, client, season, logger)
				if err != nil {
					return err
				}
				logger.Info("Schedule ingest finished",
					"season", season, "games", n,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", schedule.CurrentSeason(time.Now()), "Season start year")
	return cmd
}

// --------------------------------------------------------------------------
// game command
// --------------------------------------------------------------------------

func gameCmd() *cobra.Command {
	var season, gameID int
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Ingest a single game (events, shifts, on-ice players)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--id is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *store.Pool) error {
				client := buildClient(cfg)
				result := ingest.Game(ctx, pool.Pool, client, season, gameID, logger)
				logger.Info("Game ingest finished", "summary", result.Summary())
				if !result.Success {
					return fmt.Errorf("game %d/%d failed: %s", season, gameID, result.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", schedule.CurrentSeason(time.Now()), "Season start year")
	cmd.Flags().IntVar(&gameID, "id", 0, "Game ID (short form, e.g. 20001)")
	return cmd
}

// --------------------------------------------------------------------------
// season command
// --------------------------------------------------------------------------

func seasonCmd() *cobra.Command {
	var season, workers, maxGames int
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Ingest all completed games not yet ingested for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *store.Pool) error {
				client := buildClient(cfg)
				start := time.Now()
				result := ingest.Season(ctx, pool.Pool, client, season, workers, maxGames, logger)
				logger.Info("Season ingest finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				if len(result.Errors) > 0 {
					for _, e := range result.Errors {
						logger.Error("ingest error", "error", e)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", schedule.CurrentSeason(time.Now()), "Season start year")
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent worker count")
	cmd.Flags().IntVar(&maxGames, "max", 0, "Maximum games to ingest (0 = unlimited)")
	return cmd
}

// --------------------------------------------------------------------------
// tracking command
// --------------------------------------------------------------------------

func trackingCmd() *cobra.Command {
	var (
		season        int
		inPath        string
		outPath       string
		gameCol       string
		periodCol     string
		timeCol       string
		timeRemaining bool
	)
	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Append on-ice player columns to a tracking CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" || outPath == "" {
				return fmt.Errorf("--in and --out are required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *store.Pool) error {
				in, err := os.Open(inPath)
				if err != nil {
					return fmt.Errorf("open %s: %w", inPath, err)
				}
				defer in.Close()

				out, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer out.Close()

				opts := ingest.TrackingOptions{
					Season:        season,
					GameColumn:    gameCol,
					PeriodColumn:  periodCol,
					TimeColumn:    timeCol,
					TimeRemaining: timeRemaining,
				}
				start := time.Now()
				n, err := ingest.AttachTracking(ctx, in, out, opts, ingest.StoreShiftLoader(pool.Pool, season))
				if err != nil {
					return err
				}
				logger.Info("Tracking attach finished",
					"rows", n, "out", outPath,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", schedule.CurrentSeason(time.Now()), "Season start year")
	cmd.Flags().StringVar(&inPath, "in", "", "Input CSV path")
	cmd.Flags().StringVar(&outPath, "out", "", "Output CSV path")
	cmd.Flags().StringVar(&gameCol, "game-col", "", `Game ID column header (default "Game")`)
	cmd.Flags().StringVar(&periodCol, "period-col", "", `Period column header (default "Period")`)
	cmd.Flags().StringVar(&timeCol, "time-col", "", `Time column header (default "Time")`)
	cmd.Flags().BoolVar(&timeRemaining, "time-remaining", false, "Clock counts down within the period")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func buildClient(cfg *config.Config) *nhl.Client {
	return nhl.NewClient(nhl.Options{
		StatsBase:         cfg.StatsBaseURL,
		ChartBase:         cfg.ChartBaseURL,
		ReportBase:        cfg.ReportBaseURL,
		UserAgent:         cfg.UserAgent,
		RequestsPerMinute: cfg.FetchPerMinute,
		MaxRetries:        cfg.FetchMaxRetries,
		Timeout:           cfg.FetchTimeout,
	}, logger)
}

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *store.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := store.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
