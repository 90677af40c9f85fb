package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRow is one enriched play-by-play event as persisted and served.
type EventRow struct {
	Idx         int      `json:"idx"`
	Period      int      `json:"period"`
	Secs        int      `json:"secs"`
	Type        string   `json:"type"`
	Team        string   `json:"team,omitempty"`
	ActorID     int64    `json:"actor_id,omitempty"`
	RecipientID int64    `json:"recipient_id,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Description string   `json:"description,omitempty"`
	HomeOnIce   []string `json:"home_on_ice"`
	AwayOnIce   []string `json:"away_on_ice"`
}

// ShiftRow is one parsed shift as persisted and served.
type ShiftRow struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	Team       string `json:"team"`
	Period     int    `json:"period"`
	StartSecs  int    `json:"start_secs"`
	EndSecs    int    `json:"end_secs"`
}

const insertEventSQL = `INSERT INTO game_events
	(season, game_id, event_idx, period, secs, event_type, team,
	 actor_id, recipient_id, x, y, description, home_on_ice, away_on_ice)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

const insertShiftSQL = `INSERT INTO game_shifts
	(season, game_id, player_id, player_name, team, period, start_secs, end_secs)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

// ReplaceGameData atomically swaps in a game's events and shifts and marks
// the game ingested. Delete-then-insert inside one transaction keeps
// readers from ever seeing a half-written game.
func ReplaceGameData(ctx context.Context, pool *pgxpool.Pool, season, gameID int, events []EventRow, shifts []ShiftRow) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "delete_game_events", season, gameID); err != nil {
		return fmt.Errorf("clear events %d/%d: %w", season, gameID, err)
	}
	if _, err := tx.Exec(ctx, "delete_game_shifts", season, gameID); err != nil {
		return fmt.Errorf("clear shifts %d/%d: %w", season, gameID, err)
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(insertEventSQL,
			season, gameID, e.Idx, e.Period, e.Secs, e.Type, e.Team,
			e.ActorID, e.RecipientID, e.X, e.Y, e.Description,
			e.HomeOnIce, e.AwayOnIce)
	}
	for _, s := range shifts {
		batch.Queue(insertShiftSQL,
			season, gameID, s.PlayerID, s.PlayerName, s.Team,
			s.Period, s.StartSecs, s.EndSecs)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert game data %d/%d: %w", season, gameID, err)
	}

	if _, err := tx.Exec(ctx, "mark_ingested", season, gameID); err != nil {
		return fmt.Errorf("mark ingested %d/%d: %w", season, gameID, err)
	}
	return tx.Commit(ctx)
}

// EventsByGame returns a game's enriched events in play order.
func EventsByGame(ctx context.Context, pool *pgxpool.Pool, season, gameID int) ([]EventRow, error) {
	rows, err := pool.Query(ctx, "events_by_game", season, gameID)
	if err != nil {
		return nil, fmt.Errorf("events %d/%d: %w", season, gameID, err)
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.Idx, &e.Period, &e.Secs, &e.Type, &e.Team,
			&e.ActorID, &e.RecipientID, &e.X, &e.Y, &e.Description,
			&e.HomeOnIce, &e.AwayOnIce); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ShiftsByGame returns a game's shifts ordered by period and start time.
func ShiftsByGame(ctx context.Context, pool *pgxpool.Pool, season, gameID int) ([]ShiftRow, error) {
	rows, err := pool.Query(ctx, "shifts_by_game", season, gameID)
	if err != nil {
		return nil, fmt.Errorf("shifts %d/%d: %w", season, gameID, err)
	}
	defer rows.Close()

	var shifts []ShiftRow
	for rows.Next() {
		var s ShiftRow
		if err := rows.Scan(&s.PlayerID, &s.PlayerName, &s.Team,
			&s.Period, &s.StartSecs, &s.EndSecs); err != nil {
			return nil, fmt.Errorf("scan shift row: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
