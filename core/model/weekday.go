package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrUnknownWeekday is returned for a label outside Mon..Sun.
var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekday is one of the seven fixed weekday labels.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lists the labels in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the display position (Mon=0 ... Sun=6) or -1 for unknown labels.
func (w Weekday) Index() int {
	for i, d := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// Valid reports whether w is one of the seven labels.
func (w Weekday) Valid() bool { return w.Index() >= 0 }

// WeekdayOf maps a time.Weekday to its label.
func WeekdayOf(d time.Weekday) Weekday {
	// time.Sunday == 0
	return Weekdays[(int(d)+6)%7]
}

// ParseWeekday accepts a label case-insensitively ("mon", "Mon", "MON").
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownWeekday, s)
}

// ParseWeekdays splits a comma separated list such as "Mon,Wed,Fri".
func ParseWeekdays(s string) ([]Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Weekday
	for _, part := range strings.Split(s, ",") {
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return NormalizeDays(out)
}

// NormalizeDays validates, de-duplicates and sorts days Mon..Sun.
func NormalizeDays(days []Weekday) ([]Weekday, error) {
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if !d.Valid() {
			return nil, fmt.Errorf("%w %q", ErrUnknownWeekday, string(d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out, nil
}

// JoinDays renders days with sep, e.g. JoinDays(days, "/") -> "Mon/Wed".
func JoinDays(days []Weekday, sep string) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, sep)
}
