package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSchedule(ev ScheduleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSectionChange forwards section changes to sinks that support them.
func (m *MultiSink) RecordSectionChange(ev SectionChangeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SectionChangeRecorder); ok {
			if err := rec.RecordSectionChange(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds a client.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
