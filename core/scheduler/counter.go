package scheduler

import "github.com/kilianp07/sectionplanner/core/model"

// Span is an inclusive range of calendar days.
type Span struct {
	Start model.Date
	End   model.Date
}

// weekSpanDays is the number of days to add to a first day so that the range
// covers exactly weeks weeks (Mon + 6 = Sun for one week).
func weekSpanDays(weeks int) int { return weeks*7 - 1 }

// SessionSpan derives the session's own dates from its term. FULL_TERM uses
// the whole term, EARLY_START ends weeks after the term start and LATE_START
// begins weeks before the term end. Shortened sessions cover exactly 7*weeks
// days so holiday-aware counting never exceeds weeks x selected days.
func SessionSpan(termStart, termEnd model.Date, method model.SessionMethod, weeks int) Span {
	span := Span{Start: termStart, End: termEnd}
	switch method {
	case model.EarlyStart:
		span.End = termStart.AddDays(weekSpanDays(weeks))
	case model.LateStart:
		span.Start = termEnd.AddDays(-weekSpanDays(weeks))
	}
	return span
}

// HolidaySet holds the dates excluded from holiday-aware counting.
type HolidaySet map[model.Date]struct{}

// NewHolidaySet parses ISO holiday strings.
func NewHolidaySet(dates []string) (HolidaySet, error) {
	set := make(HolidaySet, len(dates))
	for _, s := range dates {
		d, err := model.ParseDate(s)
		if err != nil {
			return nil, err
		}
		set[d] = struct{}{}
	}
	return set, nil
}

// Contains reports whether d is a holiday.
func (h HolidaySet) Contains(d model.Date) bool {
	_, ok := h[d]
	return ok
}

// CountMeetingDays returns how many times the selected days meet in span.
// COUNT_HOLIDAYS enumerates every date and skips holidays; IGNORE_HOLIDAYS
// (or an empty selection) returns weeks x len(days).
func CountMeetingDays(span Span, weeks int, holidays HolidaySet, days []model.Weekday, method model.AttendanceMethod) int {
	if method != model.CountHolidays || len(days) == 0 {
		return weeks * len(days)
	}
	selected := make(map[model.Weekday]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}
	count := 0
	for d := span.Start; !d.After(span.End); d = d.AddDays(1) {
		if selected[model.WeekdayOf(d.Weekday())] && !holidays.Contains(d) {
			count++
		}
	}
	return count
}
