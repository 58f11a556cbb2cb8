// Package catalog keeps the calendar and rule tables that schedule
// generation reads, and swaps them atomically on reload.
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/rules"
)

// ErrNotLoaded is returned before the first successful Reload.
var ErrNotLoaded = errors.New("catalog not loaded")

// Snapshot is one consistent view of the calendar and rules. Version grows
// with every successful reload.
type Snapshot struct {
	Calendar *calendar.Calendar
	Rules    rules.Set
	Version  uint64
}

// pathProvider is implemented by sources backed by local files.
type pathProvider interface {
	Paths() []string
}

// Catalog loads the calendar from a Source and the rules from markdown files.
type Catalog struct {
	src              calendar.Source
	attendancePath   string
	contactHoursPath string

	mu   sync.RWMutex
	snap Snapshot
}

// New returns an empty catalog. Call Reload before use.
func New(src calendar.Source, attendancePath, contactHoursPath string) *Catalog {
	return &Catalog{src: src, attendancePath: attendancePath, contactHoursPath: contactHoursPath}
}

// Reload fetches the calendar and rules. On error the previous snapshot stays.
func (c *Catalog) Reload(ctx context.Context) error {
	cal, err := calendar.Load(ctx, c.src)
	if err != nil {
		return err
	}
	set, err := rules.Load(c.attendancePath, c.contactHoursPath)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snap = Snapshot{Calendar: cal, Rules: set, Version: c.snap.Version + 1}
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current view.
func (c *Catalog) Snapshot() (Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap.Calendar == nil {
		return Snapshot{}, ErrNotLoaded
	}
	return c.snap, nil
}

// Context resolves the rule and term context for one generation.
func (c *Catalog) Context(termID, sessionID string) (model.RuleAndTermContext, uint64, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return model.RuleAndTermContext{}, 0, err
	}
	term, session, err := snap.Calendar.Lookup(termID, sessionID)
	if err != nil {
		return model.RuleAndTermContext{}, 0, err
	}
	return model.RuleAndTermContext{
		Attendance: snap.Rules.Attendance,
		Term:       term,
		Session:    session,
	}, snap.Version, nil
}

// Paths lists the local files the catalog reads from.
func (c *Catalog) Paths() []string {
	var out []string
	if p, ok := c.src.(pathProvider); ok {
		out = append(out, p.Paths()...)
	}
	for _, p := range []string{c.attendancePath, c.contactHoursPath} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
