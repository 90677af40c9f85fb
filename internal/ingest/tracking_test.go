package ingest

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/rinkstat/rinkstat-data/internal/onice"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
)

func fakeLoader(shifts map[int][]onice.Shift) ShiftLoader {
	return func(_ context.Context, gameID int) (string, []onice.Shift, error) {
		return schedule.TypeRegular, shifts[gameID], nil
	}
}

func TestAttachTracking(t *testing.T) {
	in := strings.Join([]string{
		"Game,Period,Time,Note",
		"20001,1,0:50,zone entry",
		"20001,OT,0:30,rush",
		"20002,1,1:00,pass",
	}, "\n")

	shifts := map[int][]onice.Shift{
		20001: {
			{PlayerID: "Karl Alzner", Team: onice.Home, Period: 1, Start: 0, End: 100},
			{PlayerID: "Road Winger", Team: onice.Away, Period: 1, Start: 0, End: 100},
			{PlayerID: "OT Hero", Team: onice.Home, Period: 4, Start: 0, End: 60},
		},
		20002: {
			{PlayerID: "Other Guy", Team: onice.Away, Period: 1, Start: 30, End: 90},
		},
	}

	var out strings.Builder
	n, err := AttachTracking(context.Background(), strings.NewReader(in), &out,
		TrackingOptions{Season: 2017}, fakeLoader(shifts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}

	rows, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	header := rows[0]
	if header[len(header)-2] != "HomeOnIce" || header[len(header)-1] != "AwayOnIce" {
		t.Errorf("roster columns missing from header: %v", header)
	}

	if got := rows[1][4]; got != "Karl Alzner" {
		t.Errorf("row 1 home on-ice = %q, want Karl Alzner", got)
	}
	if got := rows[1][5]; got != "Road Winger" {
		t.Errorf("row 1 away on-ice = %q, want Road Winger", got)
	}

	// OT row maps to period 4.
	if got := rows[2][4]; got != "OT Hero" {
		t.Errorf("OT row home on-ice = %q, want OT Hero", got)
	}

	// Second game resolved independently.
	if got := rows[3][5]; got != "Other Guy" {
		t.Errorf("game 20002 away on-ice = %q, want Other Guy", got)
	}
	if got := rows[3][4]; got != "" {
		t.Errorf("game 20002 home on-ice should be empty, got %q", got)
	}
}

func TestAttachTrackingRemainingClock(t *testing.T) {
	in := "Game,Period,Time\n20001,1,19:10\n"
	shifts := map[int][]onice.Shift{
		20001: {{PlayerID: "P", Team: onice.Home, Period: 1, Start: 0, End: 100}},
	}

	var out strings.Builder
	_, err := AttachTracking(context.Background(), strings.NewReader(in), &out,
		TrackingOptions{Season: 2017, TimeRemaining: true}, fakeLoader(shifts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 19:10 remaining = 50s elapsed, inside P's shift.
	rows, _ := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if got := rows[1][3]; got != "P" {
		t.Errorf("expected P on ice at 50s elapsed, got %q", got)
	}
}

func TestAttachTrackingErrors(t *testing.T) {
	loader := fakeLoader(nil)

	t.Run("missing column", func(t *testing.T) {
		in := "Game,Clock\n20001,0:50\n"
		var out strings.Builder
		_, err := AttachTracking(context.Background(), strings.NewReader(in), &out,
			TrackingOptions{}, loader)
		if err == nil || !strings.Contains(err.Error(), "Period") {
			t.Errorf("expected missing-column error naming Period, got %v", err)
		}
	})

	t.Run("malformed game id", func(t *testing.T) {
		in := "Game,Period,Time\nabc,1,0:50\n"
		var out strings.Builder
		if _, err := AttachTracking(context.Background(), strings.NewReader(in), &out,
			TrackingOptions{}, loader); err == nil {
			t.Error("expected error for malformed game id")
		}
	})

	t.Run("empty sheet", func(t *testing.T) {
		var out strings.Builder
		if _, err := AttachTracking(context.Background(), strings.NewReader(""), &out,
			TrackingOptions{}, loader); err == nil {
			t.Error("expected error for empty sheet")
		}
	})
}
