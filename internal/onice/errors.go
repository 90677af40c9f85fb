package onice

import "fmt"

// OutOfRangeEventError reports an event whose time coordinate falls outside
// every known period window for the game.
type OutOfRangeEventError struct {
	Index  int
	Period int
	Secs   int
	Length int // known period length, 0 when the period itself is unknown
}

func (e *OutOfRangeEventError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("event %d: no known length for period %d (t=%ds)", e.Index, e.Period, e.Secs)
	}
	return fmt.Sprintf("event %d: time %ds outside period %d window [0,%ds]", e.Index, e.Secs, e.Period, e.Length)
}

// InvalidShiftIntervalError reports a shift with End before Start, or two
// shifts for the same player, team, and period that overlap. Both indicate
// upstream data corruption and are surfaced rather than silently merged.
type InvalidShiftIntervalError struct {
	PlayerID string
	Team     Side
	Period   int
	Start    int
	End      int

	// Overlap is true when the shift collides with another shift for the
	// same player; ConflictStart/ConflictEnd carry that shift's bounds.
	Overlap       bool
	ConflictStart int
	ConflictEnd   int
}

func (e *InvalidShiftIntervalError) Error() string {
	if e.Overlap {
		return fmt.Sprintf("player %s period %d: shift [%d,%d) overlaps shift [%d,%d)",
			e.PlayerID, e.Period, e.Start, e.End, e.ConflictStart, e.ConflictEnd)
	}
	return fmt.Sprintf("player %s period %d: shift end %d precedes start %d",
		e.PlayerID, e.Period, e.End, e.Start)
}
