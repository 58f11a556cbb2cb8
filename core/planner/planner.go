// Package planner runs the scheduling engine against the loaded catalog.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kilianp07/sectionplanner/core/cache"
	"github.com/kilianp07/sectionplanner/core/catalog"
	"github.com/kilianp07/sectionplanner/core/logger"
	coremetrics "github.com/kilianp07/sectionplanner/core/metrics"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/rules"
	"github.com/kilianp07/sectionplanner/core/scheduler"
)

// GenerateInput is one schedule generation request.
type GenerateInput struct {
	Request      model.ScheduleRequest `json:"request"`
	TermID       string                `json:"term_id"`
	SessionID    string                `json:"session_id"`
	StartTime    string                `json:"start_time"`
	LabStartTime string                `json:"lab_start_time,omitempty"`
}

// Planner runs the scheduling engine against the loaded catalog, caching
// results and recording metrics.
type Planner struct {
	catalog      *catalog.Catalog
	cache        cache.Cache
	ttl          time.Duration
	sink         coremetrics.MetricsSink
	log          logger.Logger
	defaultStart string
	now          func() time.Time
}

// New builds a Planner. A nil cache disables caching and a nil sink
// disables metrics.
func New(cat *catalog.Catalog, c cache.Cache, ttl time.Duration, sink coremetrics.MetricsSink, log logger.Logger, defaultStart string) *Planner {
	if c == nil {
		c = cache.Nop{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if defaultStart == "" {
		defaultStart = "08:00"
	}
	return &Planner{
		catalog:      cat,
		cache:        c,
		ttl:          ttl,
		sink:         sink,
		log:          log,
		defaultStart: defaultStart,
		now:          time.Now,
	}
}

// Terms returns the calendar terms sorted by start date.
func (p *Planner) Terms() ([]model.AcademicTerm, error) {
	snap, err := p.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Calendar.Terms(), nil
}

// Rules returns the loaded rule tables.
func (p *Planner) Rules() (rules.Set, error) {
	snap, err := p.catalog.Snapshot()
	if err != nil {
		return rules.Set{}, err
	}
	return snap.Rules, nil
}

// resolve fills in the default term, session and start time.
func (p *Planner) resolve(in GenerateInput) (GenerateInput, error) {
	if in.StartTime == "" {
		in.StartTime = p.defaultStart
	}
	if in.TermID != "" && in.SessionID != "" {
		return in, nil
	}
	snap, err := p.catalog.Snapshot()
	if err != nil {
		return in, err
	}
	if in.TermID == "" {
		term, session, ok := snap.Calendar.Default()
		if !ok {
			return in, fmt.Errorf("no default term: %w", catalog.ErrNotLoaded)
		}
		in.TermID = term.ID
		if in.SessionID == "" {
			in.SessionID = session.ID
		}
		return in, nil
	}
	term, err := snap.Calendar.Term(in.TermID)
	if err != nil {
		return in, err
	}
	if len(term.Sessions) > 0 {
		in.SessionID = term.Sessions[0].ID
	}
	return in, nil
}

// Generate produces the weekly timetable for in.
func (p *Planner) Generate(ctx context.Context, in GenerateInput) (model.GeneratedSchedule, error) {
	start := p.now()
	in, err := p.resolve(in)
	if err != nil {
		return model.GeneratedSchedule{}, err
	}
	rc, _, err := p.catalog.Context(in.TermID, in.SessionID)
	if err != nil {
		return model.GeneratedSchedule{}, err
	}

	key := cache.Key(cache.KeyInput{
		Term:         rc.Term,
		Session:      rc.Session,
		Method:       rc.Attendance.MethodFor(rc.Term, rc.Session),
		StartTime:    in.StartTime,
		LabStartTime: in.LabStartTime,
		Request:      in.Request,
	})
	if g, ok := p.cached(ctx, key); ok {
		p.record(in, g, true, start)
		return g, nil
	}

	g, err := scheduler.Generate(in.Request, rc, in.StartTime, in.LabStartTime)
	if err != nil {
		return model.GeneratedSchedule{}, err
	}
	if g.HasFatal() {
		for _, w := range g.Warnings {
			if w.Kind == model.Fatal {
				p.log.Warnf("schedule %s/%s: %s", in.TermID, in.SessionID, w.Message)
			}
		}
	}
	if b, err := json.Marshal(g); err == nil {
		if err := p.cache.Set(ctx, key, b, p.ttl); err != nil {
			p.log.Errorf("cache set: %v", err)
		}
	}
	p.record(in, g, false, start)
	return g, nil
}

func (p *Planner) cached(ctx context.Context, key string) (model.GeneratedSchedule, bool) {
	b, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Errorf("cache get: %v", err)
		return model.GeneratedSchedule{}, false
	}
	if !ok {
		return model.GeneratedSchedule{}, false
	}
	var g model.GeneratedSchedule
	if err := json.Unmarshal(b, &g); err != nil {
		p.log.Errorf("cache decode: %v", err)
		return model.GeneratedSchedule{}, false
	}
	return g, true
}

func (p *Planner) record(in GenerateInput, g model.GeneratedSchedule, hit bool, start time.Time) {
	ev := coremetrics.ScheduleEvent{
		TermID:          in.TermID,
		SessionID:       in.SessionID,
		Outcome:         outcome(in.Request, g),
		LectureCHPerDay: g.LectureInfo.ContactHoursPerDay,
		LabCHPerDay:     g.LabInfo.ContactHoursPerDay,
		Blocks:          len(g.ScheduleBlocks),
		CacheHit:        hit,
		Time:            p.now(),
	}
	ev.Duration = ev.Time.Sub(start)
	for _, w := range g.Warnings {
		if w.Kind == model.Fatal {
			ev.Fatals++
		} else {
			ev.Advisories++
		}
	}
	if err := p.sink.RecordSchedule(ev); err != nil {
		p.log.Warnf("record schedule: %v", err)
	}
}

func outcome(req model.ScheduleRequest, g model.GeneratedSchedule) coremetrics.Outcome {
	switch {
	case g.HasFatal():
		return coremetrics.OutcomeFatal
	case req.LectureUnits == 0 && req.LabUnits == 0:
		return coremetrics.OutcomeEmpty
	default:
		return coremetrics.OutcomeOK
	}
}
