package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rinkstat/rinkstat-data/internal/gametime"
	"github.com/rinkstat/rinkstat-data/internal/onice"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
	"github.com/rinkstat/rinkstat-data/internal/store"
)

// TrackingOptions configures how a manual tracking sheet is read.
type TrackingOptions struct {
	Season        int
	GameColumn    string // default "Game"
	PeriodColumn  string // default "Period"
	TimeColumn    string // default "Time", M:SS within the period
	TimeRemaining bool   // clock counts down instead of up
}

func (o *TrackingOptions) defaults() {
	if o.GameColumn == "" {
		o.GameColumn = "Game"
	}
	if o.PeriodColumn == "" {
		o.PeriodColumn = "Period"
	}
	if o.TimeColumn == "" {
		o.TimeColumn = "Time"
	}
}

// ShiftLoader supplies the game type and stored shifts for one game.
// Injected so the CSV logic stays independent of the database.
type ShiftLoader func(ctx context.Context, gameID int) (gameType string, shifts []onice.Shift, err error)

// StoreShiftLoader builds a ShiftLoader backed by the Postgres store.
func StoreShiftLoader(pool *pgxpool.Pool, season int) ShiftLoader {
	return func(ctx context.Context, gameID int) (string, []onice.Shift, error) {
		game, err := store.GameByID(ctx, pool, season, gameID)
		if err != nil {
			return "", nil, err
		}
		rows, err := store.ShiftsByGame(ctx, pool, season, gameID)
		if err != nil {
			return "", nil, err
		}
		shifts := make([]onice.Shift, len(rows))
		for i, r := range rows {
			id := r.PlayerID
			if r.PlayerName != "" {
				id = r.PlayerName
			}
			shifts[i] = onice.Shift{
				PlayerID: id,
				Team:     onice.Side(r.Team),
				Period:   r.Period,
				Start:    r.StartSecs,
				End:      r.EndSecs,
			}
		}
		return game.Type, shifts, nil
	}
}

// AttachTracking reads a tracking CSV, resolves the on-ice players for
// every row from stored shift data, and writes the sheet back out with
// HomeOnIce and AwayOnIce columns appended. Returns the number of data
// rows written. Rows are grouped per game so each game's shifts load once;
// a game whose reconciliation fails aborts the run, since a sheet with
// silently missing rosters is worse than no sheet.
func AttachTracking(ctx context.Context, r io.Reader, w io.Writer, opts TrackingOptions, load ShiftLoader) (int, error) {
	opts.defaults()

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read tracking sheet: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("tracking sheet is empty")
	}

	header := records[0]
	gameCol, err := columnIndex(header, opts.GameColumn)
	if err != nil {
		return 0, err
	}
	periodCol, err := columnIndex(header, opts.PeriodColumn)
	if err != nil {
		return 0, err
	}
	timeCol, err := columnIndex(header, opts.TimeColumn)
	if err != nil {
		return 0, err
	}

	rows := records[1:]
	byGame := make(map[int][]int)
	for i, row := range rows {
		gameID, err := strconv.Atoi(strings.TrimSpace(row[gameCol]))
		if err != nil {
			return 0, fmt.Errorf("row %d: malformed game id %q", i+1, row[gameCol])
		}
		byGame[gameID] = append(byGame[gameID], i)
	}

	home := make([]string, len(rows))
	away := make([]string, len(rows))
	for gameID, idxs := range byGame {
		gameType, shifts, err := load(ctx, gameID)
		if err != nil {
			return 0, fmt.Errorf("game %d: %w", gameID, err)
		}

		events := make([]onice.Event, len(idxs))
		maxPeriod := 3
		for j, i := range idxs {
			period, err := trackingPeriod(rows[i][periodCol])
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", i+1, err)
			}
			if period > maxPeriod {
				maxPeriod = period
			}
			events[j] = onice.Event{Idx: j, Period: period}
		}
		lengths := schedule.PeriodLengths(gameType, maxPeriod)

		for j, i := range idxs {
			secs, err := gametime.Elapsed(rows[i][timeCol], lengths[events[j].Period], opts.TimeRemaining)
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", i+1, err)
			}
			events[j].Secs = secs
		}

		enriched, err := onice.AttachOnIce(events, shifts, lengths)
		if err != nil {
			return 0, fmt.Errorf("game %d: %w", gameID, err)
		}
		for j, i := range idxs {
			home[i] = strings.Join(enriched[j].HomeOnIce, "; ")
			away[i] = strings.Join(enriched[j].AwayOnIce, "; ")
		}
	}

	out := csv.NewWriter(w)
	if err := out.Write(append(append([]string{}, header...), "HomeOnIce", "AwayOnIce")); err != nil {
		return 0, err
	}
	for i, row := range rows {
		if err := out.Write(append(append([]string{}, row...), home[i], away[i])); err != nil {
			return 0, err
		}
	}
	out.Flush()
	return len(rows), out.Error()
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in tracking sheet", name)
}

// trackingPeriod accepts numeric periods and the "OT" shorthand sheets use.
func trackingPeriod(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "OT") {
		return 4, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed period %q", s)
	}
	return p, nil
}
