package pbp

import "strings"

// eventNames maps the feed's event spellings and abbreviations to one
// normalized vocabulary.
var eventNames = map[string]string{
	"fac":     "faceoff",
	"faceoff": "faceoff",

	"shot": "shot",
	"sog":  "shot",
	"save": "shot",

	"hit": "hit",

	"stop":     "stoppage",
	"stoppage": "stoppage",

	"block":        "blocked shot",
	"blocked shot": "blocked shot",

	"miss":        "missed shot",
	"missed shot": "missed shot",

	"give":     "giveaway",
	"giveaway": "giveaway",

	"take":     "takeaway",
	"takeaway": "takeaway",

	"penl":    "penalty",
	"penalty": "penalty",

	"goal": "goal",

	"period ready":    "period ready",
	"period start":    "period start",
	"period end":      "period end",
	"period official": "period official",

	"game scheduled": "game scheduled",
	"gend":           "game end",
	"game end":       "game end",

	"shootout complete": "shootout complete",

	"chal":               "official challenge",
	"official challenge": "official challenge",
}

// NormalizeEvent maps a feed event name to the normalized vocabulary.
// Unknown names pass through lowercased so new feed values degrade
// gracefully instead of vanishing.
func NormalizeEvent(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if normalized, ok := eventNames[lower]; ok {
		return normalized
	}
	return lower
}
