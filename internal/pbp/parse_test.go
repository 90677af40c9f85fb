package pbp

import (
	"testing"

	"github.com/rinkstat/rinkstat-data/internal/onice"
)

const sampleFeed = `{
  "gameData": {
    "teams": {
      "home": {"id": 52},
      "away": {"id": 10}
    }
  },
  "liveData": {
    "plays": {
      "allPlays": [
        {
          "about": {"period": 1, "periodTime": "00:00"},
          "result": {"event": "Faceoff", "description": "Won faceoff"},
          "team": {"id": 52},
          "coordinates": {"x": 0, "y": 0},
          "players": [
            {"player": {"id": 8471234}, "playerType": "Winner"},
            {"player": {"id": 8475678}, "playerType": "Loser"}
          ]
        },
        {
          "about": {"period": 1, "periodTime": "01:15"},
          "result": {"event": "Blocked Shot", "description": "Shot blocked"},
          "team": {"id": 52},
          "coordinates": {"x": -70.5, "y": 12.0},
          "players": [
            {"player": {"id": 8470001}, "playerType": "Blocker"},
            {"player": {"id": 8470002}, "playerType": "Shooter"}
          ]
        },
        {
          "about": {"period": 2, "periodTime": "05:30"},
          "result": {"event": "Stoppage", "description": "Puck in netting"},
          "coordinates": {}
        }
      ]
    }
  }
}`

func TestParse(t *testing.T) {
	events, err := Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	t.Run("faceoff", func(t *testing.T) {
		fo := events[0]
		if fo.Type != "faceoff" || fo.Period != 1 || fo.Secs != 0 {
			t.Errorf("faceoff parsed wrong: %+v", fo)
		}
		if fo.Team != onice.Home {
			t.Errorf("expected home team, got %q", fo.Team)
		}
		if fo.ActorID != 8471234 || fo.ActorRole != "Winner" {
			t.Errorf("actor wrong: %d %s", fo.ActorID, fo.ActorRole)
		}
		if !fo.HasCoords {
			t.Error("faceoff should carry coordinates")
		}
	})

	t.Run("blocked shot flipped to shooter", func(t *testing.T) {
		bs := events[1]
		if bs.Type != "blocked shot" {
			t.Fatalf("expected blocked shot, got %q", bs.Type)
		}
		// Feed credited the home team (the blocker); attribution flips to away.
		if bs.Team != onice.Away || bs.TeamID != 10 {
			t.Errorf("blocked shot should belong to away team, got %q/%d", bs.Team, bs.TeamID)
		}
		if bs.ActorID != 8470002 || bs.ActorRole != "Shooter" {
			t.Errorf("shooter should be the actor after flip, got %d %s", bs.ActorID, bs.ActorRole)
		}
		if bs.RecipientID != 8470001 || bs.RecipientRole != "Blocker" {
			t.Errorf("blocker should be the recipient after flip, got %d %s", bs.RecipientID, bs.RecipientRole)
		}
		if bs.Secs != 75 {
			t.Errorf("expected 75s elapsed, got %d", bs.Secs)
		}
	})

	t.Run("neutral event", func(t *testing.T) {
		st := events[2]
		if st.Type != "stoppage" || st.Team != onice.Neutral {
			t.Errorf("stoppage parsed wrong: %+v", st)
		}
		if st.HasCoords {
			t.Error("stoppage without coordinates should not claim any")
		}
	})

	t.Run("core projection", func(t *testing.T) {
		core := Core(events)
		if len(core) != 3 {
			t.Fatalf("expected 3 core events, got %d", len(core))
		}
		if core[1].Idx != 1 || core[1].Secs != 75 || core[1].Team != onice.Away {
			t.Errorf("core projection wrong: %+v", core[1])
		}
	})
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("nope")); err == nil {
		t.Error("expected error for malformed feed")
	}
	bad := `{"liveData":{"plays":{"allPlays":[{"about":{"period":1,"periodTime":"xx"}}]}}}`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("expected error for malformed period time")
	}
}

func TestNormalizeEvent(t *testing.T) {
	cases := map[string]string{
		"FAC":          "faceoff",
		"Faceoff":      "faceoff",
		"penl":         "penalty",
		"Blocked Shot": "blocked shot",
		"GEND":         "game end",
		"Giveaway":     "giveaway",
		"TAKE":         "takeaway",
		"Mystery":      "mystery",
	}
	for in, want := range cases {
		if got := NormalizeEvent(in); got != want {
			t.Errorf("NormalizeEvent(%q) = %q, want %q", in, got, want)
		}
	}
}
