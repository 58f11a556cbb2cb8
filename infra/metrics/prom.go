package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/sectionplanner/core/metrics"
)

// PromSink records schedule generations in Prometheus metrics.
type PromSink struct {
	generations *prometheus.CounterVec
	warnings    *prometheus.CounterVec
	perDay      *prometheus.HistogramVec
	cacheHits   prometheus.Counter
	sections    *prometheus.CounterVec
}

// NewPromSink registers schedule metrics on the default Prometheus registerer.
// The exporter should be started separately using StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// register adds c to reg, reusing a collector registered earlier under the same name.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.generations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_generations_total",
		Help: "Total number of schedule generations by outcome",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.warnings, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_warnings_total",
		Help: "Warnings attached to generated schedules",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.perDay, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_contact_hours_per_day",
		Help:    "Rounded contact hours per meeting day",
		Buckets: []float64{1, 1.5, 2, 2.5, 3, 4, 5, 6, 8},
	}, []string{"component"})); err != nil {
		return nil, err
	}
	if s.cacheHits, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_cache_hits_total",
		Help: "Schedules served from the result cache",
	})); err != nil {
		return nil, err
	}
	if s.sections, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "section_changes_total",
		Help: "Saved-section changes by type",
	}, []string{"type"})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordSchedule updates the generation counters and contact-hour histogram.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.generations.WithLabelValues(string(ev.Outcome)).Inc()
	if ev.Advisories > 0 {
		s.warnings.WithLabelValues("advisory").Add(float64(ev.Advisories))
	}
	if ev.Fatals > 0 {
		s.warnings.WithLabelValues("fatal").Add(float64(ev.Fatals))
	}
	if ev.LectureCHPerDay > 0 {
		s.perDay.WithLabelValues("lecture").Observe(ev.LectureCHPerDay)
	}
	if ev.LabCHPerDay > 0 {
		s.perDay.WithLabelValues("lab").Observe(ev.LabCHPerDay)
	}
	if ev.CacheHit {
		s.cacheHits.Inc()
	}
	return nil
}

// RecordSectionChange counts saved-section changes.
func (s *PromSink) RecordSectionChange(ev coremetrics.SectionChangeEvent) error {
	s.sections.WithLabelValues(ev.Type).Inc()
	return nil
}
