package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned for a start time that is not a valid HH:MM.
var ErrInvalidClock = errors.New("invalid clock time")

// ParseClock converts a 24-hour HH:MM string into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return 0, fmt.Errorf("%w %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as zero-padded HH:MM. Hours are
// not wrapped, so a block crossing midnight ends at e.g. "24:10".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
