// Package onice reconciles shift (time-on-ice) intervals with play-by-play
// events to determine which players were on the ice at each event.
//
// The package is pure computation: no I/O, no hidden state. Callers supply
// the events and shifts for one game and receive a new enriched event slice.
package onice

import (
	"sort"
)

// Side identifies which bench a player or event belongs to.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
	// Neutral marks events with no acting team (stoppages, period markers).
	Neutral Side = ""
)

// Event is a single play-by-play event, normalized to period-relative time.
type Event struct {
	Idx    int    // sequential index within the game
	Period int    // 1-3 regulation, 4+ overtime
	Secs   int    // seconds elapsed within the period
	Type   string // normalized event name (faceoff, shot, goal, ...)
	Team   Side   // acting team, Neutral for no-team events
}

// Shift is one continuous interval a player spent on the ice, as a
// half-open interval [Start, End) in period-relative seconds. A player on
// at exactly Start is on the ice; a player whose shift ends at exactly End
// has already left.
type Shift struct {
	PlayerID string
	Team     Side
	Period   int
	Start    int
	End      int
}

// EnrichedEvent is an Event with the on-ice roster for each team attached.
// The rosters are sorted and duplicate-free so identical inputs always
// produce identical output.
type EnrichedEvent struct {
	Event
	HomeOnIce []string
	AwayOnIce []string
}

// PeriodLengths maps period number to period length in seconds. Regulation
// periods are 1200s; overtime lengths depend on game type and must be
// supplied by the caller.
type PeriodLengths map[int]int

// RegulationLengths returns the three standard 20-minute periods.
func RegulationLengths() PeriodLengths {
	return PeriodLengths{1: 1200, 2: 1200, 3: 1200}
}

// AttachOnIce computes, for every event, the set of players from each team
// whose shift interval contains the event's time coordinate, and returns a
// new slice of enriched events in the same order as the input.
//
// Inputs are never mutated. Zero events or zero shifts is not an error:
// the result simply carries empty rosters. Structural defects in the input
// are reported, never repaired: an event outside its period window yields
// an *OutOfRangeEventError, a shift with End < Start or two overlapping
// shifts for the same player yield an *InvalidShiftIntervalError.
func AttachOnIce(events []Event, shifts []Shift, lengths PeriodLengths) ([]EnrichedEvent, error) {
	if lengths == nil {
		lengths = RegulationLengths()
	}

	if err := validateEvents(events, lengths); err != nil {
		return nil, err
	}
	if err := validateShifts(shifts); err != nil {
		return nil, err
	}

	enriched := make([]EnrichedEvent, len(events))
	for i, ev := range events {
		enriched[i] = EnrichedEvent{Event: ev, HomeOnIce: []string{}, AwayOnIce: []string{}}
	}
	if len(events) == 0 || len(shifts) == 0 {
		return enriched, nil
	}

	// Shifts and events are grouped per (team, period) and swept
	// independently. Period boundaries are hard resets; a shift never
	// influences an event in another period.
	type key struct {
		team   Side
		period int
	}
	grouped := make(map[key][]Shift)
	for _, s := range shifts {
		k := key{s.Team, s.Period}
		grouped[k] = append(grouped[k], s)
	}

	periods := make(map[int][]int) // period -> indices into events
	for i, ev := range events {
		periods[ev.Period] = append(periods[ev.Period], i)
	}

	for period, idxs := range periods {
		// Stable sort by time keeps feed order for ties.
		ordered := make([]int, len(idxs))
		copy(ordered, idxs)
		sort.SliceStable(ordered, func(a, b int) bool {
			return events[ordered[a]].Secs < events[ordered[b]].Secs
		})

		for _, team := range []Side{Home, Away} {
			sweep(grouped[key{team, period}], events, ordered, team, enriched)
		}
	}

	return enriched, nil
}

// boundary is one end of a shift interval. Removals sort before additions
// at equal times so a shift ending at t and another starting at t hand
// over cleanly: the leaving player is off for an event at t, the arriving
// player is on.
type boundary struct {
	time     int
	add      bool
	playerID string
}

// sweep walks one team's shifts and the events of one period in time order,
// maintaining the active-player set. Linear in boundaries plus events after
// the sort.
func sweep(shifts []Shift, events []Event, ordered []int, team Side, out []EnrichedEvent) {
	if len(shifts) == 0 {
		return
	}

	bounds := make([]boundary, 0, 2*len(shifts))
	for _, s := range shifts {
		if s.Start == s.End {
			continue // empty interval, contains no instant
		}
		bounds = append(bounds, boundary{s.Start, true, s.PlayerID})
		bounds = append(bounds, boundary{s.End, false, s.PlayerID})
	}
	sort.Slice(bounds, func(i, j int) bool {
		if bounds[i].time != bounds[j].time {
			return bounds[i].time < bounds[j].time
		}
		return !bounds[i].add && bounds[j].add
	})

	active := make(map[string]bool)
	bi := 0
	for _, ei := range ordered {
		t := events[ei].Secs
		for bi < len(bounds) && bounds[bi].time <= t {
			if bounds[bi].add {
				active[bounds[bi].playerID] = true
			} else {
				delete(active, bounds[bi].playerID)
			}
			bi++
		}

		roster := make([]string, 0, len(active))
		for id := range active {
			roster = append(roster, id)
		}
		sort.Strings(roster)
		if team == Home {
			out[ei].HomeOnIce = roster
		} else {
			out[ei].AwayOnIce = roster
		}
	}
}

func validateEvents(events []Event, lengths PeriodLengths) error {
	for _, ev := range events {
		length, known := lengths[ev.Period]
		if !known || ev.Secs < 0 || ev.Secs > length {
			return &OutOfRangeEventError{
				Index:  ev.Idx,
				Period: ev.Period,
				Secs:   ev.Secs,
				Length: length,
			}
		}
	}
	return nil
}

func validateShifts(shifts []Shift) error {
	type key struct {
		playerID string
		team     Side
		period   int
	}
	byPlayer := make(map[key][]Shift)
	for _, s := range shifts {
		if s.End < s.Start {
			return &InvalidShiftIntervalError{
				PlayerID: s.PlayerID,
				Team:     s.Team,
				Period:   s.Period,
				Start:    s.Start,
				End:      s.End,
			}
		}
		k := key{s.PlayerID, s.Team, s.Period}
		byPlayer[k] = append(byPlayer[k], s)
	}

	// A player's own shifts within one period must not overlap. Half-open
	// intervals make back-to-back shifts ([a,b) then [b,c)) legal.
	for _, ss := range byPlayer {
		if len(ss) < 2 {
			continue
		}
		sort.Slice(ss, func(i, j int) bool { return ss[i].Start < ss[j].Start })
		for i := 1; i < len(ss); i++ {
			prev, cur := ss[i-1], ss[i]
			if cur.Start < prev.End {
				return &InvalidShiftIntervalError{
					PlayerID:      cur.PlayerID,
					Team:          cur.Team,
					Period:        cur.Period,
					Start:         cur.Start,
					End:           cur.End,
					ConflictStart: prev.Start,
					ConflictEnd:   prev.End,
					Overlap:       true,
				}
			}
		}
	}
	return nil
}
