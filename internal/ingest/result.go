// Package ingest orchestrates the per-game pipeline: fetch the live feed
// and shift data, parse both, reconcile on-ice rosters, and persist the
// result. Season-level runs fan out over a worker pool with per-game error
// isolation, so one malformed game never blocks the rest.
package ingest

import (
	"fmt"
	"time"
)

// GameResult tracks the outcome of ingesting a single game.
type GameResult struct {
	Season       int
	GameID       int
	Events       int
	Shifts       int
	HTMLFallback bool
	Success      bool
	Error        string
	Duration     time.Duration
}

// Summary returns a human-readable summary.
func (r *GameResult) Summary() string {
	status := "ok"
	if !r.Success {
		status = "FAILED"
	}
	return fmt.Sprintf("game=%d/%d events=%d shifts=%d html=%v status=%s dur=%s",
		r.Season, r.GameID, r.Events, r.Shifts, r.HTMLFallback, status,
		r.Duration.Round(time.Millisecond))
}

// SeasonResult tracks counts and errors from a season-level run.
type SeasonResult struct {
	GamesFound     int
	GamesProcessed int
	GamesSucceeded int
	GamesFailed    int
	EventsStored   int
	ShiftsStored   int
	Duration       time.Duration
	Errors         []string
	Results        []GameResult
}

// AddError records an error message.
func (r *SeasonResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeasonResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the season run.
func (r *SeasonResult) Summary() string {
	return fmt.Sprintf(
		"found=%d processed=%d succeeded=%d failed=%d events=%d shifts=%d dur=%s",
		r.GamesFound, r.GamesProcessed, r.GamesSucceeded, r.GamesFailed,
		r.EventsStored, r.ShiftsStored, r.Duration.Round(time.Second))
}
