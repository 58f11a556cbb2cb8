package model

// TermType classifies an academic term.
type TermType string

const (
	TermSemester     TermType = "semester"
	TermIntersession TermType = "intersession"
)

// SessionMethod determines how a session's span is derived from its term.
type SessionMethod string

const (
	FullTerm   SessionMethod = "FULL_TERM"
	LateStart  SessionMethod = "LATE_START"
	EarlyStart SessionMethod = "EARLY_START"
)

// Valid reports whether m is a known session method.
func (m SessionMethod) Valid() bool {
	switch m {
	case FullTerm, LateStart, EarlyStart:
		return true
	}
	return false
}

// TermSession is a sub-span of a term with its own length in weeks.
type TermSession struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Weeks  int           `json:"weeks" yaml:"weeks"`
	Method SessionMethod `json:"method" yaml:"method"`
}

// AcademicTerm is one entry of the institutional calendar. Dates are ISO strings.
type AcademicTerm struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Type      TermType      `json:"type" yaml:"type"`
	StartDate string        `json:"start_date" yaml:"start_date"`
	EndDate   string        `json:"end_date" yaml:"end_date"`
	Holidays  []string      `json:"holidays" yaml:"holidays"`
	Sessions  []TermSession `json:"sessions" yaml:"sessions"`
}

// Session returns the session with the given id.
func (t AcademicTerm) Session(id string) (TermSession, bool) {
	for _, s := range t.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return TermSession{}, false
}
