package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/metrics"
	"github.com/rinkstat/rinkstat-data/internal/nhl"
	"github.com/rinkstat/rinkstat-data/internal/onice"
	"github.com/rinkstat/rinkstat-data/internal/pbp"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
	"github.com/rinkstat/rinkstat-data/internal/store"
	"github.com/rinkstat/rinkstat-data/internal/toi"
)

// Schedule fetches one season's schedule and upserts it. Returns the
// number of games written.
func Schedule(ctx context.Context, pool *pgxpool.Pool, client *nhl.Client, season int, logger *slog.Logger) (int, error) {
	raw, err := client.Schedule(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("fetch schedule %d: %w", season, err)
	}
	games, err := schedule.Parse(raw, season)
	if err != nil {
		return 0, fmt.Errorf("parse schedule %d: %w", season, err)
	}
	count, err := store.UpsertGames(ctx, pool, games)
	if err != nil {
		return count, err
	}
	logger.Info("Schedule stored", "season", season, "games", count)
	return count, nil
}

// Game runs the full pipeline for a single game. The schedule row must
// already be stored (it supplies team IDs and the game type, which decides
// overtime period lengths).
func Game(ctx context.Context, pool *pgxpool.Pool, client *nhl.Client, season, gameID int, logger *slog.Logger) GameResult {
	start := time.Now()
	result := GameResult{Season: season, GameID: gameID}

	fail := func(err error) GameResult {
		metrics.IngestFailures.Inc()
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	game, err := store.GameByID(ctx, pool, season, gameID)
	if err != nil {
		return fail(fmt.Errorf("schedule row missing (run schedule ingest first): %w", err))
	}

	feedRaw, err := client.GameFeed(ctx, season, gameID)
	if err != nil {
		return fail(fmt.Errorf("fetch live feed: %w", err))
	}
	events, err := pbp.Parse(feedRaw)
	if err != nil {
		return fail(fmt.Errorf("parse live feed: %w", err))
	}

	maxPeriod := 3
	for _, e := range events {
		if e.Period > maxPeriod {
			maxPeriod = e.Period
		}
	}
	lengths := schedule.PeriodLengths(game.Type, maxPeriod)

	shifts, htmlFallback, err := fetchShifts(ctx, client, game, lengths)
	if err != nil {
		return fail(err)
	}
	result.HTMLFallback = htmlFallback

	enriched, err := onice.AttachOnIce(pbp.Core(events), toi.Core(shifts), lengths)
	if err != nil {
		return fail(fmt.Errorf("attach on-ice players: %w", err))
	}

	eventRows := eventRows(events, enriched)
	shiftRows := shiftRows(shifts)
	if err := store.ReplaceGameData(ctx, pool, season, gameID, eventRows, shiftRows); err != nil {
		return fail(err)
	}

	metrics.GamesIngested.Inc()
	result.Events = len(eventRows)
	result.Shifts = len(shiftRows)
	result.Success = true
	result.Duration = time.Since(start)
	logger.Info("Game ingested", "summary", result.Summary())
	return result
}

// fetchShifts pulls shift data from the chart feed, falling back to the
// HTML reports for games the feed does not cover (early seasons).
func fetchShifts(ctx context.Context, client *nhl.Client, game schedule.Game, lengths onice.PeriodLengths) ([]toi.Shift, bool, error) {
	chartRaw, err := client.ShiftChart(ctx, game.Season, game.ID)
	if err == nil {
		shifts, perr := toi.ParseShiftChart(chartRaw, game.HomeID, game.RoadID, lengths)
		if perr != nil {
			return nil, false, fmt.Errorf("parse shift chart: %w", perr)
		}
		if len(shifts) > 0 {
			return shifts, false, nil
		}
	}

	var shifts []toi.Shift
	for _, side := range []onice.Side{onice.Home, onice.Away} {
		html, err := client.ShiftReport(ctx, game.Season, game.ID, side)
		if err != nil {
			return nil, true, fmt.Errorf("fetch %s shift report: %w", side, err)
		}
		parsed, err := toi.ParseShiftReport(html, side, lengths)
		if err != nil {
			return nil, true, fmt.Errorf("parse %s shift report: %w", side, err)
		}
		shifts = append(shifts, parsed...)
	}
	return shifts, true, nil
}

func eventRows(events []pbp.Event, enriched []onice.EnrichedEvent) []store.EventRow {
	rows := make([]store.EventRow, len(events))
	for i, e := range events {
		row := store.EventRow{
			Idx:         e.Idx,
			Period:      e.Period,
			Secs:        e.Secs,
			Type:        e.Type,
			Team:        string(e.Team),
			ActorID:     e.ActorID,
			RecipientID: e.RecipientID,
			Description: e.Description,
			HomeOnIce:   enriched[i].HomeOnIce,
			AwayOnIce:   enriched[i].AwayOnIce,
		}
		if e.HasCoords {
			x, y := e.X, e.Y
			row.X, row.Y = &x, &y
		}
		rows[i] = row
	}
	return rows
}

func shiftRows(shifts []toi.Shift) []store.ShiftRow {
	rows := make([]store.ShiftRow, len(shifts))
	for i, s := range shifts {
		core := s.Core()
		rows[i] = store.ShiftRow{
			PlayerID:   core.PlayerID,
			PlayerName: s.Name,
			Team:       string(s.Team),
			Period:     s.Period,
			StartSecs:  s.Start,
			EndSecs:    s.End,
		}
	}
	return rows
}
