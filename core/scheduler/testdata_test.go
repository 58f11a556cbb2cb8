package scheduler

import "github.com/kilianp07/sectionplanner/core/model"

var (
	mwf = []model.Weekday{model.Monday, model.Wednesday, model.Friday}
	tth = []model.Weekday{model.Tuesday, model.Thursday}
)

// fall2025 spans exactly 17 weeks (Mon 2025-08-25 to Sun 2025-12-21).
func fall2025() model.AcademicTerm {
	return model.AcademicTerm{
		ID:        "fa2025",
		Name:      "Fall 2025",
		Type:      model.TermSemester,
		StartDate: "2025-08-25",
		EndDate:   "2025-12-21",
		Holidays:  []string{"2025-09-01", "2025-11-27", "2025-11-28"},
		Sessions: []model.TermSession{
			{ID: "full", Name: "Full Term", Weeks: 17, Method: model.FullTerm},
			{ID: "early", Name: "First 8 Weeks", Weeks: 8, Method: model.EarlyStart},
			{ID: "late", Name: "Second 8 Weeks", Weeks: 8, Method: model.LateStart},
		},
	}
}

func ruleContext(sessionID string, method model.AttendanceMethod) model.RuleAndTermContext {
	term := fall2025()
	session, _ := term.Session(sessionID)
	return model.RuleAndTermContext{
		Attendance: model.AttendanceRules{
			model.RuleSemesterFullTerm:  {Method: method},
			model.RuleSemesterShortTerm: {Method: method},
			"SEMESTER":                  {Method: method},
		},
		Term:    term,
		Session: session,
	}
}
