// Package pbp parses the NHL live feed into normalized play-by-play events.
package pbp

import (
	"encoding/json"
	"fmt"

	"github.com/rinkstat/rinkstat-data/internal/gametime"
	"github.com/rinkstat/rinkstat-data/internal/onice"
)

// Event is one parsed play with the detail the feed carries beyond the
// reconciler's needs: actors, coordinates, and the raw description.
type Event struct {
	Idx           int
	Period        int
	Secs          int
	Type          string
	Team          onice.Side
	TeamID        int
	ActorID       int64
	ActorRole     string
	RecipientID   int64
	RecipientRole string
	X             float64
	Y             float64
	HasCoords     bool
	Description   string
}

// Core projects the event down to the reconciler's input shape.
func (e Event) Core() onice.Event {
	return onice.Event{Idx: e.Idx, Period: e.Period, Secs: e.Secs, Type: e.Type, Team: e.Team}
}

// Core converts a parsed event slice to reconciler input.
func Core(events []Event) []onice.Event {
	out := make([]onice.Event, len(events))
	for i, e := range events {
		out[i] = e.Core()
	}
	return out
}

// liveFeed mirrors the slice of the statsapi live feed we consume.
type liveFeed struct {
	GameData struct {
		Teams struct {
			Home struct {
				ID int `json:"id"`
			} `json:"home"`
			Away struct {
				ID int `json:"id"`
			} `json:"away"`
		} `json:"teams"`
	} `json:"gameData"`
	LiveData struct {
		Plays struct {
			AllPlays []feedPlay `json:"allPlays"`
		} `json:"plays"`
	} `json:"liveData"`
}

type feedPlay struct {
	About struct {
		Period     int    `json:"period"`
		PeriodTime string `json:"periodTime"`
	} `json:"about"`
	Result struct {
		Event       string `json:"event"`
		Description string `json:"description"`
	} `json:"result"`
	Team *struct {
		ID int `json:"id"`
	} `json:"team"`
	Coordinates struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"coordinates"`
	Players []struct {
		Player struct {
			ID int64 `json:"id"`
		} `json:"player"`
		PlayerType string `json:"playerType"`
	} `json:"players"`
}

// Parse converts a raw live feed into normalized events. Times come out
// period-relative. Blocked shots are re-attributed to the shooting team
// (the feed credits the blocker's team), swapping actor and recipient to
// match.
func Parse(raw []byte) ([]Event, error) {
	var feed liveFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode live feed: %w", err)
	}

	homeID := feed.GameData.Teams.Home.ID
	awayID := feed.GameData.Teams.Away.ID

	events := make([]Event, 0, len(feed.LiveData.Plays.AllPlays))
	for i, play := range feed.LiveData.Plays.AllPlays {
		secs, err := gametime.ParseClock(play.About.PeriodTime)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}

		ev := Event{
			Idx:         i,
			Period:      play.About.Period,
			Secs:        secs,
			Type:        NormalizeEvent(play.Result.Event),
			Description: play.Result.Description,
		}

		if play.Team != nil {
			ev.TeamID = play.Team.ID
			switch play.Team.ID {
			case homeID:
				ev.Team = onice.Home
			case awayID:
				ev.Team = onice.Away
			}
		}

		if play.Coordinates.X != nil && play.Coordinates.Y != nil {
			ev.X, ev.Y = *play.Coordinates.X, *play.Coordinates.Y
			ev.HasCoords = true
		}

		if len(play.Players) > 0 {
			ev.ActorID = play.Players[0].Player.ID
			ev.ActorRole = play.Players[0].PlayerType
		}
		if len(play.Players) > 1 {
			ev.RecipientID = play.Players[1].Player.ID
			ev.RecipientRole = play.Players[1].PlayerType
		}

		if ev.Type == "blocked shot" {
			ev = flipBlockedShot(ev, homeID, awayID)
		}

		events = append(events, ev)
	}
	return events, nil
}

// flipBlockedShot switches a blocked shot from the blocker's team to the
// shooter's, so shot-attempt accounting lands on the attacking side.
func flipBlockedShot(ev Event, homeID, awayID int) Event {
	switch ev.Team {
	case onice.Home:
		ev.Team = onice.Away
		ev.TeamID = awayID
	case onice.Away:
		ev.Team = onice.Home
		ev.TeamID = homeID
	}
	ev.ActorID, ev.RecipientID = ev.RecipientID, ev.ActorID
	ev.ActorRole, ev.RecipientRole = ev.RecipientRole, ev.ActorRole
	return ev
}
