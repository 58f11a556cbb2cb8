// Package export renders generated schedules and saved sections as text,
// TSV and CSV for pasting into registrar tools.
package export

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeFormat selects 12-hour or 24-hour wall-clock rendering.
type TimeFormat string

const (
	Format12h TimeFormat = "12h"
	Format24h TimeFormat = "24h"
)

// ParseTimeFormat accepts "12h" or "24h"; empty means 12h.
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch TimeFormat(strings.ToLower(s)) {
	case "", Format12h:
		return Format12h, nil
	case Format24h:
		return Format24h, nil
	}
	return "", fmt.Errorf("unknown time format %q", s)
}

// WallClock renders an engine time ("HH:MM", hours may exceed 23) as a wall
// clock. Hours wrap modulo 24; unparsable input is returned unchanged.
func WallClock(hhmm string, f TimeFormat) string {
	if hhmm == "" {
		return ""
	}
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return hhmm
	}
	hour %= 24
	if f == Format24h {
		return fmt.Sprintf("%02d:%s", hour, m)
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%s %s", hour, m, suffix)
}

// minutes parses an engine time for ordering; hours are not bounded.
func minutes(hhmm string) int {
	h, m, _ := strings.Cut(hhmm, ":")
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return hour*60 + minute
}
