package toi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rinkstat/rinkstat-data/internal/gametime"
	"github.com/rinkstat/rinkstat-data/internal/onice"
)

// ParseShiftReport extracts shifts from an HTML shift report (the TH/TV
// pages), the fallback for games the shift-chart feed does not cover.
// The reports identify players by name only, so PlayerID stays zero and
// the name is the identifier downstream.
func ParseShiftReport(html []byte, team onice.Side, lengths onice.PeriodLengths) ([]Shift, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse shift report: %w", err)
	}

	var shifts []Shift
	var current string
	var rowErr error

	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if heading := row.Find("td.playerHeading"); heading.Length() > 0 {
			current = playerName(heading.First().Text())
			return true
		}
		if current == "" {
			return true
		}

		cells := row.Find("td")
		if cells.Length() < 6 {
			return true
		}
		// Shift rows start with the shift number; header and spacer rows
		// do not.
		if _, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text())); err != nil {
			return true
		}

		s, err := parseReportRow(current, team, cells)
		if err != nil {
			rowErr = err
			return false
		}
		if fixed, keep := normalize(s, lengths); keep {
			shifts = append(shifts, fixed)
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return shifts, nil
}

func parseReportRow(player string, team onice.Side, cells *goquery.Selection) (Shift, error) {
	period, err := reportPeriod(cells.Eq(1).Text())
	if err != nil {
		return Shift{}, fmt.Errorf("player %s: %w", player, err)
	}
	start, err := reportClock(cells.Eq(2).Text())
	if err != nil {
		return Shift{}, fmt.Errorf("player %s period %d: %w", player, period, err)
	}
	end, err := reportClock(cells.Eq(3).Text())
	if err != nil {
		return Shift{}, fmt.Errorf("player %s period %d: %w", player, period, err)
	}
	return Shift{Name: player, Team: team, Period: period, Start: start, End: end}, nil
}

// reportPeriod handles the report's period column, which uses "OT" for a
// single-overtime period.
func reportPeriod(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "OT" {
		return 4, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed period %q", s)
	}
	return p, nil
}

// reportClock parses the report's "elapsed / remaining" time cells,
// e.g. "0:32 / 19:28", keeping the elapsed side.
func reportClock(s string) (int, error) {
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return gametime.ParseClock(s)
}

// playerName turns a heading like "27 ALZNER, KARL" into "KARL ALZNER".
func playerName(heading string) string {
	name := strings.TrimSpace(heading)
	if i := strings.IndexByte(name, ' '); i > 0 {
		if _, err := strconv.Atoi(name[:i]); err == nil {
			name = strings.TrimSpace(name[i+1:])
		}
	}
	if i := strings.Index(name, ","); i >= 0 {
		last := strings.TrimSpace(name[:i])
		first := strings.TrimSpace(name[i+1:])
		return first + " " + last
	}
	return name
}
