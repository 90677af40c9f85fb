// Package toi parses NHL shift data, from the shift-chart JSON feed or
// from the HTML shift reports, into clean half-open shift intervals.
package toi

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rinkstat/rinkstat-data/internal/gametime"
	"github.com/rinkstat/rinkstat-data/internal/onice"
)

// Shift is one parsed shift with player identity attached. Start and End
// are period-relative seconds forming a half-open interval [Start, End).
type Shift struct {
	PlayerID int64
	Name     string
	TeamID   int
	Team     onice.Side
	Period   int
	Start    int
	End      int
}

// Duration returns the shift length in seconds.
func (s Shift) Duration() int { return s.End - s.Start }

// Core projects the shift down to the reconciler's input shape. The HTML
// reports carry names but no league IDs, so the name serves as the player
// identifier when no ID is known.
func (s Shift) Core() onice.Shift {
	id := s.Name
	if s.PlayerID != 0 {
		id = strconv.FormatInt(s.PlayerID, 10)
	}
	return onice.Shift{PlayerID: id, Team: s.Team, Period: s.Period, Start: s.Start, End: s.End}
}

// Core converts a parsed shift slice to reconciler input.
func Core(shifts []Shift) []onice.Shift {
	out := make([]onice.Shift, len(shifts))
	for i, s := range shifts {
		out[i] = s.Core()
	}
	return out
}

// shiftChart mirrors the shift-chart feed response.
type shiftChart struct {
	Data []struct {
		PlayerID  int64  `json:"playerId"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Period    int    `json:"period"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		TeamID    int    `json:"teamId"`
	} `json:"data"`
}

// ParseShiftChart converts raw shift-chart JSON into clean shifts.
// Zero-length shifts are dropped. A shift whose recorded end precedes its
// start (goalie shifts logged across a period break) is clamped to the
// period length. An empty data array is not an error; the game simply has
// no shift data yet.
func ParseShiftChart(raw []byte, homeID, roadID int, lengths onice.PeriodLengths) ([]Shift, error) {
	var chart shiftChart
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, fmt.Errorf("decode shift chart: %w", err)
	}

	shifts := make([]Shift, 0, len(chart.Data))
	for i, row := range chart.Data {
		start, err := gametime.ParseClock(row.StartTime)
		if err != nil {
			return nil, fmt.Errorf("shift %d (player %d): %w", i, row.PlayerID, err)
		}
		end, err := gametime.ParseClock(row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("shift %d (player %d): %w", i, row.PlayerID, err)
		}

		s := Shift{
			PlayerID: row.PlayerID,
			Name:     row.FirstName + " " + row.LastName,
			TeamID:   row.TeamID,
			Period:   row.Period,
			Start:    start,
			End:      end,
		}
		switch row.TeamID {
		case homeID:
			s.Team = onice.Home
		case roadID:
			s.Team = onice.Away
		default:
			return nil, fmt.Errorf("shift %d: team %d is neither home (%d) nor road (%d)",
				i, row.TeamID, homeID, roadID)
		}

		if fixed, keep := normalize(s, lengths); keep {
			shifts = append(shifts, fixed)
		}
	}
	return shifts, nil
}

// normalize applies the data-quality fixups the raw feed needs before the
// intervals can be trusted, and reports whether the shift survives.
func normalize(s Shift, lengths onice.PeriodLengths) (Shift, bool) {
	length := gametime.RegulationSeconds
	if l, ok := lengths[s.Period]; ok {
		length = l
	}

	// Goalie shifts spanning a period break get logged with the end clock
	// from the following period. Truncate at the period boundary; the next
	// period's portion shows up as its own shift.
	if s.End < s.Start {
		s.End = length
	}
	if s.End > length {
		s.End = length
	}

	if s.End <= s.Start {
		return s, false
	}
	return s, true
}
