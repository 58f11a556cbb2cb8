package model

import "strings"

// AttendanceMethod selects how meeting days are counted.
type AttendanceMethod string

const (
	// IgnoreHolidays counts weeks x selected days.
	IgnoreHolidays AttendanceMethod = "IGNORE_HOLIDAYS"
	// CountHolidays enumerates the session's dates and skips holidays.
	CountHolidays AttendanceMethod = "COUNT_HOLIDAYS"
)

// Valid reports whether m is a known accounting method.
func (m AttendanceMethod) Valid() bool { return m == IgnoreHolidays || m == CountHolidays }

// Rule keys used by the attendance accounting table.
const (
	RuleSemesterFullTerm  = "SEMESTER_FULL_TERM"
	RuleSemesterShortTerm = "SEMESTER_SHORT_TERM"
)

// AttendanceRule is one entry of the attendance accounting table.
type AttendanceRule struct {
	Method      AttendanceMethod `json:"method"`
	Description string           `json:"description"`
}

// AttendanceRules maps a term/session-shape key to its accounting rule.
type AttendanceRules map[string]AttendanceRule

// RuleKey returns the table key for a term and session: the upper-cased term
// type, or SEMESTER_SHORT_TERM for a semester session that is not full term.
func RuleKey(term AcademicTerm, session TermSession) string {
	if term.Type == TermSemester && session.Method != FullTerm {
		return RuleSemesterShortTerm
	}
	return strings.ToUpper(string(term.Type))
}

// MethodFor resolves the accounting method for term and session. Unknown keys
// fall back to SEMESTER_FULL_TERM and then to IgnoreHolidays.
func (r AttendanceRules) MethodFor(term AcademicTerm, session TermSession) AttendanceMethod {
	if rule, ok := r[RuleKey(term, session)]; ok {
		return rule.Method
	}
	if rule, ok := r[RuleSemesterFullTerm]; ok {
		return rule.Method
	}
	return IgnoreHolidays
}

// ContactHourRule is a MIN/MAX band from the contact hour rule file.
type ContactHourRule struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	ContactHours float64 `json:"contact_hours"`
}

// ContactHourRules maps a category to its band. It is informational only.
type ContactHourRules map[string]ContactHourRule

// RuleAndTermContext bundles the calendar and rule data for one computation.
type RuleAndTermContext struct {
	Attendance AttendanceRules
	Term       AcademicTerm
	Session    TermSession
}
