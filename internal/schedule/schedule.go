// Package schedule parses NHL season schedules and knows the period
// structure of each game type.
package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rinkstat/rinkstat-data/internal/gametime"
	"github.com/rinkstat/rinkstat-data/internal/onice"
)

// Game types as reported by the schedule feed.
const (
	TypePreseason = "PR"
	TypeRegular   = "R"
	TypePlayoffs  = "P"
	TypeAllStar   = "A"
)

// Game is one schedule row. ID is the short game number (e.g. 20001 for
// the first regular-season game); GamePk is the league's full identifier
// with the season prefix.
type Game struct {
	Season    int
	ID        int
	GamePk    int64
	Type      string
	Date      string
	Status    string
	HomeID    int
	HomeName  string
	RoadID    int
	RoadName  string
	HomeScore int
	RoadScore int
	Venue     string
}

// Final reports whether the game has completed.
func (g Game) Final() bool { return g.Status == "Final" }

// scheduleFeed mirrors the statsapi schedule response shape.
type scheduleFeed struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk   int64  `json:"gamePk"`
			GameType string `json:"gameType"`
			Status   struct {
				DetailedState string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away feedTeam `json:"away"`
				Home feedTeam `json:"home"`
			} `json:"teams"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

type feedTeam struct {
	Score int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// Parse extracts the games of one season from the raw schedule feed.
// Preseason and all-star games are dropped, matching the short-ID range
// the rest of the pipeline works with.
func Parse(raw []byte, season int) ([]Game, error) {
	var feed scheduleFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode schedule feed: %w", err)
	}

	var games []Game
	for _, d := range feed.Dates {
		for _, g := range d.Games {
			if g.GameType != TypeRegular && g.GameType != TypePlayoffs {
				continue
			}
			games = append(games, Game{
				Season:    season,
				ID:        shortID(g.GamePk),
				GamePk:    g.GamePk,
				Type:      g.GameType,
				Date:      d.Date,
				Status:    g.Status.DetailedState,
				HomeID:    g.Teams.Home.Team.ID,
				HomeName:  g.Teams.Home.Team.Name,
				RoadID:    g.Teams.Away.Team.ID,
				RoadName:  g.Teams.Away.Team.Name,
				HomeScore: g.Teams.Home.Score,
				RoadScore: g.Teams.Away.Score,
				Venue:     g.Venue.Name,
			})
		}
	}
	return games, nil
}

// shortID strips the season prefix from a gamePk: 2017020001 -> 20001.
func shortID(gamePk int64) int {
	return int(gamePk % 1000000)
}

// PeriodLengths returns the period length table for a game that reached
// maxPeriod. Regular-season overtime is a single 5-minute period; playoff
// overtimes are full 20-minute periods and repeat until decided.
func PeriodLengths(gameType string, maxPeriod int) onice.PeriodLengths {
	lengths := onice.RegulationLengths()
	for p := 4; p <= maxPeriod; p++ {
		if gameType == TypeRegular {
			lengths[p] = 300
		} else {
			lengths[p] = gametime.RegulationSeconds
		}
	}
	return lengths
}

// CurrentSeason derives the season label from the calendar date: the
// 2017-18 season is "2017", and a new season starts in September.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.September {
		return now.Year()
	}
	return now.Year() - 1
}

// SeasonWindow returns the date range covering one season's games.
func SeasonWindow(season int) (start, end string) {
	return fmt.Sprintf("%d-09-01", season), fmt.Sprintf("%d-06-25", season+1)
}
