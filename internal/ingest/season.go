package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/nhl"
	"github.com/rinkstat/rinkstat-data/internal/store"
)

// Season ingests every final game of a season that has no stored events
// yet, fanning out over a worker pool. maxGames caps the run (0 = no cap).
// A failed game is recorded and skipped; the rest of the batch continues.
func Season(ctx context.Context, pool *pgxpool.Pool, client *nhl.Client, season, workers, maxGames int, logger *slog.Logger) SeasonResult {
	start := time.Now()
	var result SeasonResult

	pending, err := store.UningestedFinals(ctx, pool, season)
	if err != nil {
		result.AddError(err.Error())
		result.Duration = time.Since(start)
		return result
	}
	if maxGames > 0 && len(pending) > maxGames {
		pending = pending[:maxGames]
	}

	result.GamesFound = len(pending)
	if len(pending) == 0 {
		logger.Info("No games pending ingest", "season", season)
		result.Duration = time.Since(start)
		return result
	}
	logger.Info("Found games pending ingest", "season", season, "count", len(pending))

	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	ch := make(chan int, len(pending))
	for _, id := range pending {
		ch <- id
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameID := range ch {
				if ctx.Err() != nil {
					return
				}
				gr := Game(ctx, pool, client, season, gameID, logger)

				mu.Lock()
				result.Results = append(result.Results, gr)
				result.GamesProcessed++
				if gr.Success {
					result.GamesSucceeded++
					result.EventsStored += gr.Events
					result.ShiftsStored += gr.Shifts
				} else {
					result.GamesFailed++
					result.AddErrorf("game %d/%d: %s", season, gameID, gr.Error)
					logger.Error("Game ingest failed", "season", season, "game", gameID, "error", gr.Error)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	result.Duration = time.Since(start)
	return result
}
