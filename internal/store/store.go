// Package store provides pgxpool-based persistence for schedules, parsed
// events, shifts, and the per-event on-ice rosters.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/config"
)

// Table names — single source of truth, matches schema.sql.
const (
	GamesTable  = "games"
	EventsTable = "game_events"
	ShiftsTable = "game_shifts"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Schedules
		"upsert_game": `INSERT INTO games
			(season, game_id, game_pk, game_type, game_date, status,
			 home_id, home_name, road_id, road_name, home_score, road_score, venue)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			ON CONFLICT (season, game_id) DO UPDATE SET
			 status = EXCLUDED.status,
			 home_score = EXCLUDED.home_score,
			 road_score = EXCLUDED.road_score,
			 game_date = EXCLUDED.game_date`,
		"game_by_id": `SELECT season, game_id, game_pk, game_type, game_date, status,
			 home_id, home_name, road_id, road_name, home_score, road_score, venue
			FROM games WHERE season = $1 AND game_id = $2`,
		"games_by_season": `SELECT season, game_id, game_pk, game_type, game_date, status,
			 home_id, home_name, road_id, road_name, home_score, road_score, venue
			FROM games WHERE season = $1 ORDER BY game_id`,
		"mark_ingested":     "UPDATE games SET ingested_at = now() WHERE season = $1 AND game_id = $2",
		"uningested_finals": "SELECT game_id FROM games WHERE season = $1 AND status = 'Final' AND ingested_at IS NULL ORDER BY game_id",
		"ingest_status": `SELECT count(*),
			 count(*) FILTER (WHERE status = 'Final'),
			 count(*) FILTER (WHERE ingested_at IS NOT NULL)
			FROM games WHERE season = $1`,

		// Events + shifts
		"delete_game_events": "DELETE FROM game_events WHERE season = $1 AND game_id = $2",
		"delete_game_shifts": "DELETE FROM game_shifts WHERE season = $1 AND game_id = $2",
		"events_by_game": `SELECT event_idx, period, secs, event_type, team,
			 actor_id, recipient_id, x, y, description, home_on_ice, away_on_ice
			FROM game_events WHERE season = $1 AND game_id = $2 ORDER BY event_idx`,
		"shifts_by_game": `SELECT player_id, player_name, team, period, start_secs, end_secs
			FROM game_shifts WHERE season = $1 AND game_id = $2
			ORDER BY period, start_secs, player_id`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
