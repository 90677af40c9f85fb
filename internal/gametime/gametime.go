// Package gametime converts between the NHL's MM:SS clock strings and
// period-relative seconds.
package gametime

import (
	"fmt"
	"strconv"
	"strings"
)

// RegulationSeconds is the length of a regulation period.
const RegulationSeconds = 1200

// ParseClock converts a clock string like "12:34" to seconds.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock %q", s)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", s, err)
	}
	if m < 0 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return m*60 + sec, nil
}

// Elapsed converts a clock reading to seconds elapsed in the period.
// remaining=true means the clock counts down from the period length.
func Elapsed(clock string, periodLength int, remaining bool) (int, error) {
	secs, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	if remaining {
		secs = periodLength - secs
	}
	if secs < 0 || secs > periodLength {
		return 0, fmt.Errorf("clock %q outside period of %ds", clock, periodLength)
	}
	return secs, nil
}

// FormatClock renders seconds as an MM:SS string.
func FormatClock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
