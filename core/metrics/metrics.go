package metrics

import "time"

// Outcome classifies one schedule generation.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeFatal Outcome = "fatal"
	OutcomeEmpty Outcome = "empty"
)

// ScheduleEvent summarizes one schedule generation.
type ScheduleEvent struct {
	TermID          string
	SessionID       string
	Outcome         Outcome
	LectureCHPerDay float64
	LabCHPerDay     float64
	Blocks          int
	Advisories      int
	Fatals          int
	CacheHit        bool
	Duration        time.Duration
	Time            time.Time
}

// MetricsSink records schedule generations.
type MetricsSink interface {
	RecordSchedule(ev ScheduleEvent) error
}

// SectionChangeEvent records a change to the saved-section list.
type SectionChangeEvent struct {
	Type  string
	Count int
	Time  time.Time
}

// SectionChangeRecorder is implemented by sinks that track section changes.
type SectionChangeRecorder interface {
	RecordSectionChange(ev SectionChangeEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSchedule(ScheduleEvent) error           { return nil }
func (NopSink) RecordSectionChange(SectionChangeEvent) error { return nil }
