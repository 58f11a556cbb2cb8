// Package calendar holds the institutional academic calendar: terms, their
// sessions and holidays.
package calendar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/scheduler"
)

var (
	// ErrTermNotFound is returned for an unknown term id.
	ErrTermNotFound = errors.New("term not found")
	// ErrSessionNotFound is returned for an unknown session id within a term.
	ErrSessionNotFound = errors.New("session not found")
)

// Calendar is an immutable, start-date ordered set of terms.
type Calendar struct {
	terms []model.AcademicTerm
	byID  map[string]int
}

// New validates the terms and sorts them by start date.
func New(terms []model.AcademicTerm) (*Calendar, error) {
	sorted := make([]model.AcademicTerm, len(terms))
	copy(sorted, terms)
	starts := make(map[string]model.Date, len(sorted))
	for _, t := range sorted {
		if err := Validate(t); err != nil {
			return nil, err
		}
		starts[t.ID], _ = model.ParseDate(t.StartDate)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return starts[sorted[i].ID].Before(starts[sorted[j].ID])
	})
	c := &Calendar{terms: sorted, byID: make(map[string]int, len(sorted))}
	for i, t := range sorted {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate term id %s", t.ID)
		}
		c.byID[t.ID] = i
	}
	return c, nil
}

// Validate checks a term's dates, holidays and sessions.
func Validate(t model.AcademicTerm) error {
	if t.ID == "" {
		return errors.New("term id is required")
	}
	start, err := model.ParseDate(t.StartDate)
	if err != nil {
		return fmt.Errorf("term %s start: %w", t.ID, err)
	}
	end, err := model.ParseDate(t.EndDate)
	if err != nil {
		return fmt.Errorf("term %s end: %w", t.ID, err)
	}
	if end.Before(start) {
		return fmt.Errorf("term %s ends before it starts", t.ID)
	}
	if t.Type != model.TermSemester && t.Type != model.TermIntersession {
		return fmt.Errorf("term %s: unknown type %q", t.ID, t.Type)
	}
	if _, err := scheduler.NewHolidaySet(t.Holidays); err != nil {
		return fmt.Errorf("term %s holidays: %w", t.ID, err)
	}
	if len(t.Sessions) == 0 {
		return fmt.Errorf("term %s has no sessions", t.ID)
	}
	for _, s := range t.Sessions {
		if !s.Method.Valid() {
			return fmt.Errorf("term %s session %s: unknown method %q", t.ID, s.ID, s.Method)
		}
		if s.Weeks <= 0 {
			return fmt.Errorf("term %s session %s: weeks must be positive", t.ID, s.ID)
		}
	}
	return nil
}

// Terms returns a copy of the terms in start-date order.
func (c *Calendar) Terms() []model.AcademicTerm {
	out := make([]model.AcademicTerm, len(c.terms))
	copy(out, c.terms)
	return out
}

// Term returns the term with the given id.
func (c *Calendar) Term(id string) (model.AcademicTerm, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.AcademicTerm{}, fmt.Errorf("%w: %s", ErrTermNotFound, id)
	}
	return c.terms[i], nil
}

// Lookup returns a term and one of its sessions.
func (c *Calendar) Lookup(termID, sessionID string) (model.AcademicTerm, model.TermSession, error) {
	term, err := c.Term(termID)
	if err != nil {
		return model.AcademicTerm{}, model.TermSession{}, err
	}
	session, ok := term.Session(sessionID)
	if !ok {
		return model.AcademicTerm{}, model.TermSession{}, fmt.Errorf("%w: %s/%s", ErrSessionNotFound, termID, sessionID)
	}
	return term, session, nil
}

// Default returns the first term and its first session, or ok=false when empty.
func (c *Calendar) Default() (model.AcademicTerm, model.TermSession, bool) {
	if len(c.terms) == 0 {
		return model.AcademicTerm{}, model.TermSession{}, false
	}
	return c.terms[0], c.terms[0].Sessions[0], true
}

// SessionDates returns the ISO first and last day of a session.
func SessionDates(term model.AcademicTerm, session model.TermSession) (string, string, error) {
	start, err := model.ParseDate(term.StartDate)
	if err != nil {
		return "", "", err
	}
	end, err := model.ParseDate(term.EndDate)
	if err != nil {
		return "", "", err
	}
	span := scheduler.SessionSpan(start, end, session.Method, session.Weeks)
	return span.Start.String(), span.End.String(), nil
}
