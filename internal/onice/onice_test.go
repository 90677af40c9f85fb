package onice

import (
	"errors"
	"reflect"
	"testing"
)

func TestAttachOnIce(t *testing.T) {
	t.Run("basic containment", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 50, Type: "faceoff", Team: Home}}
		shifts := []Shift{
			{PlayerID: "A", Team: Home, Period: 1, Start: 0, End: 100},
			{PlayerID: "B", Team: Away, Period: 1, Start: 0, End: 100},
		}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enriched) != 1 {
			t.Fatalf("expected 1 enriched event, got %d", len(enriched))
		}
		if !reflect.DeepEqual(enriched[0].HomeOnIce, []string{"A"}) {
			t.Errorf("expected home on-ice [A], got %v", enriched[0].HomeOnIce)
		}
		if !reflect.DeepEqual(enriched[0].AwayOnIce, []string{"B"}) {
			t.Errorf("expected away on-ice [B], got %v", enriched[0].AwayOnIce)
		}
	})

	t.Run("inclusive start boundary", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 100, Type: "faceoff", Team: Home}}
		shifts := []Shift{{PlayerID: "P", Team: Home, Period: 1, Start: 100, End: 200}}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(enriched[0].HomeOnIce, []string{"P"}) {
			t.Errorf("player starting at event time should be on ice, got %v", enriched[0].HomeOnIce)
		}
	})

	t.Run("exclusive end boundary", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 100, Type: "shot", Team: Home}}
		shifts := []Shift{{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 100}}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enriched[0].HomeOnIce) != 0 {
			t.Errorf("player whose shift ends at event time should be off ice, got %v", enriched[0].HomeOnIce)
		}
	})

	t.Run("clean handover at shift change", func(t *testing.T) {
		// One player leaves at t=100 exactly as another arrives.
		events := []Event{{Idx: 0, Period: 1, Secs: 100, Type: "faceoff", Team: Home}}
		shifts := []Shift{
			{PlayerID: "leaving", Team: Home, Period: 1, Start: 0, End: 100},
			{PlayerID: "arriving", Team: Home, Period: 1, Start: 100, End: 200},
		}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(enriched[0].HomeOnIce, []string{"arriving"}) {
			t.Errorf("expected only the arriving player, got %v", enriched[0].HomeOnIce)
		}
	})

	t.Run("period isolation", func(t *testing.T) {
		// The period-1 shift numerically contains t=50, but the event is in
		// period 2 and must not see it.
		events := []Event{{Idx: 0, Period: 2, Secs: 50, Type: "hit", Team: Away}}
		shifts := []Shift{{PlayerID: "P", Team: Away, Period: 1, Start: 0, End: 1200}}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enriched[0].AwayOnIce) != 0 {
			t.Errorf("period-1 shift leaked into period-2 event: %v", enriched[0].AwayOnIce)
		}
	})

	t.Run("full lines both teams", func(t *testing.T) {
		events := []Event{
			{Idx: 0, Period: 1, Secs: 0, Type: "faceoff", Team: Home},
			{Idx: 1, Period: 1, Secs: 45, Type: "shot", Team: Away},
			{Idx: 2, Period: 1, Secs: 70, Type: "goal", Team: Home},
		}
		var shifts []Shift
		for _, id := range []string{"h1", "h2", "h3", "h4", "h5", "hg"} {
			shifts = append(shifts, Shift{PlayerID: id, Team: Home, Period: 1, Start: 0, End: 60})
		}
		for _, id := range []string{"a1", "a2", "a3", "a4", "a5", "ag"} {
			shifts = append(shifts, Shift{PlayerID: id, Team: Away, Period: 1, Start: 0, End: 60})
		}
		// Line change at 60 for home only.
		for _, id := range []string{"h6", "h7", "h8", "h9", "h10", "hg"} {
			start := 60
			if id == "hg" {
				continue // goalie shift already covers [0,60); add a fresh one
			}
			shifts = append(shifts, Shift{PlayerID: id, Team: Home, Period: 1, Start: start, End: 120})
		}
		shifts = append(shifts, Shift{PlayerID: "hg", Team: Home, Period: 1, Start: 60, End: 120})
		shifts = append(shifts, Shift{PlayerID: "ag", Team: Away, Period: 1, Start: 60, End: 120})

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := enriched[0].HomeOnIce; len(got) != 6 {
			t.Errorf("opening faceoff: expected 6 home players, got %v", got)
		}
		if got := enriched[1].AwayOnIce; len(got) != 6 {
			t.Errorf("shot at 45s: expected 6 away players, got %v", got)
		}
		want := []string{"h10", "h6", "h7", "h8", "h9", "hg"}
		if got := enriched[2].HomeOnIce; !reflect.DeepEqual(got, want) {
			t.Errorf("goal at 70s: expected %v, got %v", want, got)
		}
		if got := enriched[2].AwayOnIce; !reflect.DeepEqual(got, []string{"ag"}) {
			t.Errorf("goal at 70s: expected only away goalie, got %v", got)
		}
	})

	t.Run("overtime period with caller-supplied length", func(t *testing.T) {
		lengths := RegulationLengths()
		lengths[4] = 300
		events := []Event{{Idx: 0, Period: 4, Secs: 250, Type: "goal", Team: Home}}
		shifts := []Shift{{PlayerID: "OT", Team: Home, Period: 4, Start: 200, End: 300}}

		enriched, err := AttachOnIce(events, shifts, lengths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(enriched[0].HomeOnIce, []string{"OT"}) {
			t.Errorf("expected [OT], got %v", enriched[0].HomeOnIce)
		}
	})

	t.Run("neutral event still gets both rosters", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 30, Type: "stoppage", Team: Neutral}}
		shifts := []Shift{
			{PlayerID: "H", Team: Home, Period: 1, Start: 0, End: 60},
			{PlayerID: "A", Team: Away, Period: 1, Start: 0, End: 60},
		}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enriched[0].HomeOnIce) != 1 || len(enriched[0].AwayOnIce) != 1 {
			t.Errorf("neutral event rosters wrong: home=%v away=%v",
				enriched[0].HomeOnIce, enriched[0].AwayOnIce)
		}
	})
}

func TestAttachOnIceErrors(t *testing.T) {
	t.Run("event past end of regulation period", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 1300, Type: "shot", Team: Home}}

		_, err := AttachOnIce(events, []Shift{{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 100}}, nil)
		var oor *OutOfRangeEventError
		if !errors.As(err, &oor) {
			t.Fatalf("expected OutOfRangeEventError, got %v", err)
		}
		if oor.Index != 0 || oor.Period != 1 || oor.Secs != 1300 {
			t.Errorf("error should identify event 0 period 1 t=1300, got %+v", oor)
		}
	})

	t.Run("event in unknown period", func(t *testing.T) {
		events := []Event{{Idx: 3, Period: 5, Secs: 10, Type: "shot", Team: Home}}

		_, err := AttachOnIce(events, nil, RegulationLengths())
		var oor *OutOfRangeEventError
		if !errors.As(err, &oor) {
			t.Fatalf("expected OutOfRangeEventError, got %v", err)
		}
		if oor.Index != 3 {
			t.Errorf("error should identify event index 3, got %d", oor.Index)
		}
	})

	t.Run("negative event time", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: -1, Type: "shot", Team: Home}}

		_, err := AttachOnIce(events, nil, nil)
		var oor *OutOfRangeEventError
		if !errors.As(err, &oor) {
			t.Fatalf("expected OutOfRangeEventError, got %v", err)
		}
	})

	t.Run("shift end before start", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 50, Type: "shot", Team: Home}}
		shifts := []Shift{{PlayerID: "bad", Team: Home, Period: 1, Start: 200, End: 100}}

		_, err := AttachOnIce(events, shifts, nil)
		var inv *InvalidShiftIntervalError
		if !errors.As(err, &inv) {
			t.Fatalf("expected InvalidShiftIntervalError, got %v", err)
		}
		if inv.PlayerID != "bad" || inv.Period != 1 {
			t.Errorf("error should identify player and period, got %+v", inv)
		}
		if inv.Overlap {
			t.Error("reversed interval should not be reported as overlap")
		}
	})

	t.Run("overlapping shifts same player", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 50, Type: "shot", Team: Home}}
		shifts := []Shift{
			{PlayerID: "dup", Team: Home, Period: 1, Start: 100, End: 200},
			{PlayerID: "dup", Team: Home, Period: 1, Start: 150, End: 250},
		}

		_, err := AttachOnIce(events, shifts, nil)
		var inv *InvalidShiftIntervalError
		if !errors.As(err, &inv) {
			t.Fatalf("expected InvalidShiftIntervalError, got %v", err)
		}
		if !inv.Overlap {
			t.Error("expected overlap flag set")
		}
		if inv.PlayerID != "dup" {
			t.Errorf("error should identify player dup, got %s", inv.PlayerID)
		}
	})

	t.Run("back to back shifts are legal", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 150, Type: "shot", Team: Home}}
		shifts := []Shift{
			{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 100},
			{PlayerID: "P", Team: Home, Period: 1, Start: 100, End: 200},
		}

		if _, err := AttachOnIce(events, shifts, nil); err != nil {
			t.Fatalf("touching intervals must not be rejected: %v", err)
		}
	})

	t.Run("same player different periods may repeat bounds", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 2, Secs: 50, Type: "shot", Team: Home}}
		shifts := []Shift{
			{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 100},
			{PlayerID: "P", Team: Home, Period: 2, Start: 0, End: 100},
		}

		enriched, err := AttachOnIce(events, shifts, nil)
		if err != nil {
			t.Fatalf("identical bounds in different periods are not overlaps: %v", err)
		}
		if !reflect.DeepEqual(enriched[0].HomeOnIce, []string{"P"}) {
			t.Errorf("expected [P], got %v", enriched[0].HomeOnIce)
		}
	})
}

func TestAttachOnIceEmptyInputs(t *testing.T) {
	t.Run("no shifts yields empty rosters", func(t *testing.T) {
		events := []Event{{Idx: 0, Period: 1, Secs: 50, Type: "faceoff", Team: Home}}

		enriched, err := AttachOnIce(events, nil, nil)
		if err != nil {
			t.Fatalf("zero shifts must not fail: %v", err)
		}
		if len(enriched) != 1 {
			t.Fatalf("expected 1 event, got %d", len(enriched))
		}
		if len(enriched[0].HomeOnIce) != 0 || len(enriched[0].AwayOnIce) != 0 {
			t.Errorf("expected empty rosters, got home=%v away=%v",
				enriched[0].HomeOnIce, enriched[0].AwayOnIce)
		}
	})

	t.Run("no events yields empty result", func(t *testing.T) {
		shifts := []Shift{{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 100}}

		enriched, err := AttachOnIce(nil, shifts, nil)
		if err != nil {
			t.Fatalf("zero events must not fail: %v", err)
		}
		if len(enriched) != 0 {
			t.Errorf("expected empty result, got %d events", len(enriched))
		}
	})

	t.Run("invalid shifts rejected even with no events", func(t *testing.T) {
		shifts := []Shift{{PlayerID: "bad", Team: Home, Period: 1, Start: 10, End: 5}}

		_, err := AttachOnIce(nil, shifts, nil)
		var inv *InvalidShiftIntervalError
		if !errors.As(err, &inv) {
			t.Fatalf("expected InvalidShiftIntervalError, got %v", err)
		}
	})
}

func TestAttachOnIceDeterminism(t *testing.T) {
	events := []Event{
		{Idx: 0, Period: 1, Secs: 10, Type: "faceoff", Team: Home},
		{Idx: 1, Period: 1, Secs: 500, Type: "shot", Team: Away},
		{Idx: 2, Period: 2, Secs: 30, Type: "penalty", Team: Home},
		{Idx: 3, Period: 3, Secs: 1200, Type: "period end", Team: Neutral},
	}
	shifts := []Shift{
		{PlayerID: "z", Team: Home, Period: 1, Start: 0, End: 600},
		{PlayerID: "a", Team: Home, Period: 1, Start: 0, End: 600},
		{PlayerID: "m", Team: Home, Period: 1, Start: 400, End: 900},
		{PlayerID: "q", Team: Away, Period: 1, Start: 450, End: 700},
		{PlayerID: "b", Team: Home, Period: 2, Start: 0, End: 60},
	}

	first, err := AttachOnIce(events, shifts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AttachOnIce(events, shifts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical output")
	}

	// Rosters come out sorted regardless of shift input order.
	if !reflect.DeepEqual(first[1].HomeOnIce, []string{"a", "m", "z"}) {
		t.Errorf("expected sorted roster [a m z], got %v", first[1].HomeOnIce)
	}
}

func TestAttachOnIceMonotonicity(t *testing.T) {
	// Adding a shift that contains an event's time strictly adds that
	// player to the roster, never removes anyone.
	events := []Event{{Idx: 0, Period: 1, Secs: 300, Type: "shot", Team: Home}}
	base := []Shift{
		{PlayerID: "one", Team: Home, Period: 1, Start: 0, End: 600},
		{PlayerID: "two", Team: Home, Period: 1, Start: 250, End: 500},
	}

	before, err := AttachOnIce(events, base, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	extra := append(append([]Shift{}, base...),
		Shift{PlayerID: "three", Team: Home, Period: 1, Start: 290, End: 310})
	after, err := AttachOnIce(events, extra, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[string]bool)
	for _, id := range after[0].HomeOnIce {
		got[id] = true
	}
	for _, id := range before[0].HomeOnIce {
		if !got[id] {
			t.Errorf("adding a shift removed player %s from the roster", id)
		}
	}
	if !got["three"] {
		t.Error("added containing shift did not add its player")
	}
}

func TestAttachOnIceDoesNotMutateInputs(t *testing.T) {
	events := []Event{
		{Idx: 0, Period: 1, Secs: 700, Type: "shot", Team: Home},
		{Idx: 1, Period: 1, Secs: 100, Type: "faceoff", Team: Home},
	}
	shifts := []Shift{
		{PlayerID: "B", Team: Home, Period: 1, Start: 600, End: 800},
		{PlayerID: "A", Team: Home, Period: 1, Start: 0, End: 200},
	}
	eventsCopy := append([]Event{}, events...)
	shiftsCopy := append([]Shift{}, shifts...)

	if _, err := AttachOnIce(events, shifts, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(events, eventsCopy) {
		t.Error("events slice was mutated")
	}
	if !reflect.DeepEqual(shifts, shiftsCopy) {
		t.Error("shifts slice was mutated")
	}
}

func TestAttachOnIceOutputOrderMatchesInput(t *testing.T) {
	// Events arrive ordered by (period, time); output keeps input order
	// even across the per-period grouping.
	events := []Event{
		{Idx: 0, Period: 1, Secs: 10, Type: "faceoff", Team: Home},
		{Idx: 1, Period: 1, Secs: 10, Type: "hit", Team: Away},
		{Idx: 2, Period: 2, Secs: 0, Type: "faceoff", Team: Home},
	}
	shifts := []Shift{{PlayerID: "P", Team: Home, Period: 1, Start: 0, End: 20}}

	enriched, err := AttachOnIce(events, shifts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, ev := range enriched {
		if ev.Idx != events[i].Idx || ev.Type != events[i].Type {
			t.Errorf("output position %d does not match input event: %+v", i, ev.Event)
		}
	}
}
