package scheduler

import (
	"testing"

	"github.com/kilianp07/sectionplanner/core/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestSessionSpan(t *testing.T) {
	start, end := mustDate(t, "2025-08-25"), mustDate(t, "2025-12-21")
	cases := []struct {
		method     model.SessionMethod
		weeks      int
		start, end string
	}{
		{model.FullTerm, 17, "2025-08-25", "2025-12-21"},
		{model.EarlyStart, 8, "2025-08-25", "2025-10-19"},
		{model.LateStart, 8, "2025-10-27", "2025-12-21"},
	}
	for _, c := range cases {
		span := SessionSpan(start, end, c.method, c.weeks)
		if span.Start.String() != c.start || span.End.String() != c.end {
			t.Fatalf("%s: got %s..%s", c.method, span.Start, span.End)
		}
		if c.method != model.FullTerm && span.Start.DaysUntil(span.End)+1 != c.weeks*7 {
			t.Fatalf("%s: span is not %d weeks", c.method, c.weeks)
		}
	}
}

func TestCountMeetingDays(t *testing.T) {
	term := fall2025()
	start, end := mustDate(t, term.StartDate), mustDate(t, term.EndDate)
	holidays, err := NewHolidaySet(term.Holidays)
	if err != nil {
		t.Fatalf("holidays: %v", err)
	}
	cases := []struct {
		name   string
		method model.SessionMethod
		weeks  int
		days   []model.Weekday
		acct   model.AttendanceMethod
		want   int
	}{
		{"analytic mwf", model.FullTerm, 17, mwf, model.IgnoreHolidays, 51},
		{"holiday mwf", model.FullTerm, 17, mwf, model.CountHolidays, 49},
		{"holiday tth", model.FullTerm, 17, tth, model.CountHolidays, 33},
		{"early mwf", model.EarlyStart, 8, mwf, model.CountHolidays, 23},
		{"late tth", model.LateStart, 8, tth, model.CountHolidays, 15},
		{"no days", model.FullTerm, 17, nil, model.CountHolidays, 0},
		{"saturday", model.FullTerm, 17, []model.Weekday{model.Saturday}, model.CountHolidays, 17},
	}
	for _, c := range cases {
		span := SessionSpan(start, end, c.method, c.weeks)
		if got := CountMeetingDays(span, c.weeks, holidays, c.days, c.acct); got != c.want {
			t.Fatalf("%s: expected %d got %d", c.name, c.want, got)
		}
	}
}

func TestHolidayCountingBoundedByAnalytic(t *testing.T) {
	term := fall2025()
	start, end := mustDate(t, term.StartDate), mustDate(t, term.EndDate)
	holidays, _ := NewHolidaySet(term.Holidays)
	for _, session := range term.Sessions {
		span := SessionSpan(start, end, session.Method, session.Weeks)
		for mask := 1; mask < 1<<7; mask++ {
			var days []model.Weekday
			for i, d := range model.Weekdays {
				if mask&(1<<i) != 0 {
					days = append(days, d)
				}
			}
			analytic := CountMeetingDays(span, session.Weeks, holidays, days, model.IgnoreHolidays)
			withHolidays := CountMeetingDays(span, session.Weeks, holidays, days, model.CountHolidays)
			noHolidays := CountMeetingDays(span, session.Weeks, HolidaySet{}, days, model.CountHolidays)
			if withHolidays > analytic {
				t.Fatalf("%s %v: holiday count %d exceeds analytic %d", session.ID, days, withHolidays, analytic)
			}
			if noHolidays != analytic {
				t.Fatalf("%s %v: empty holiday list gave %d want %d", session.ID, days, noHolidays, analytic)
			}
		}
	}
}

func TestNewHolidaySetInvalid(t *testing.T) {
	if _, err := NewHolidaySet([]string{"2025-02-30"}); err == nil {
		t.Fatalf("expected error")
	}
}
