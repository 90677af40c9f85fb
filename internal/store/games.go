package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/schedule"
)

// UpsertGames writes schedule rows, updating status and scores for games
// already present. Returns the number of rows written.
func UpsertGames(ctx context.Context, pool *pgxpool.Pool, games []schedule.Game) (int, error) {
	count := 0
	for _, g := range games {
		_, err := pool.Exec(ctx, "upsert_game",
			g.Season, g.ID, g.GamePk, g.Type, g.Date, g.Status,
			g.HomeID, g.HomeName, g.RoadID, g.RoadName,
			g.HomeScore, g.RoadScore, g.Venue)
		if err != nil {
			return count, fmt.Errorf("upsert game %d/%d: %w", g.Season, g.ID, err)
		}
		count++
	}
	return count, nil
}

// GameByID looks up one schedule row.
func GameByID(ctx context.Context, pool *pgxpool.Pool, season, gameID int) (schedule.Game, error) {
	var g schedule.Game
	err := pool.QueryRow(ctx, "game_by_id", season, gameID).Scan(
		&g.Season, &g.ID, &g.GamePk, &g.Type, &g.Date, &g.Status,
		&g.HomeID, &g.HomeName, &g.RoadID, &g.RoadName,
		&g.HomeScore, &g.RoadScore, &g.Venue)
	if err != nil {
		return g, fmt.Errorf("game %d/%d: %w", season, gameID, err)
	}
	return g, nil
}

// GamesBySeason returns the stored schedule for one season.
func GamesBySeason(ctx context.Context, pool *pgxpool.Pool, season int) ([]schedule.Game, error) {
	rows, err := pool.Query(ctx, "games_by_season", season)
	if err != nil {
		return nil, fmt.Errorf("games for season %d: %w", season, err)
	}
	defer rows.Close()

	var games []schedule.Game
	for rows.Next() {
		var g schedule.Game
		if err := rows.Scan(
			&g.Season, &g.ID, &g.GamePk, &g.Type, &g.Date, &g.Status,
			&g.HomeID, &g.HomeName, &g.RoadID, &g.RoadName,
			&g.HomeScore, &g.RoadScore, &g.Venue); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// MarkIngested records that a game's events and shifts are stored.
func MarkIngested(ctx context.Context, pool *pgxpool.Pool, season, gameID int) error {
	_, err := pool.Exec(ctx, "mark_ingested", season, gameID)
	return err
}

// UningestedFinals lists final games whose events have not been stored yet,
// the work queue for autoupdate sweeps.
func UningestedFinals(ctx context.Context, pool *pgxpool.Pool, season int) ([]int, error) {
	rows, err := pool.Query(ctx, "uningested_finals", season)
	if err != nil {
		return nil, fmt.Errorf("uningested finals for season %d: %w", season, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IngestStatus summarizes ingest progress for one season.
type IngestStatus struct {
	Season   int `json:"season"`
	Games    int `json:"games"`
	Finals   int `json:"finals"`
	Ingested int `json:"ingested"`
}

// SeasonIngestStatus counts stored, final, and ingested games for a season.
func SeasonIngestStatus(ctx context.Context, pool *pgxpool.Pool, season int) (IngestStatus, error) {
	st := IngestStatus{Season: season}
	err := pool.QueryRow(ctx, "ingest_status", season).Scan(&st.Games, &st.Finals, &st.Ingested)
	if err != nil {
		return st, fmt.Errorf("ingest status for season %d: %w", season, err)
	}
	return st, nil
}
