package metrics

import (
	"context"
	"time"

	coremetrics "github.com/kilianp07/sectionplanner/core/metrics"
	"github.com/kilianp07/sectionplanner/core/sections"
)

// SectionCollector is a sections.Notifier that records every change in a
// metrics sink before handing it to the next notifier.
type SectionCollector struct {
	Sink coremetrics.MetricsSink
	Next sections.Notifier
}

// Notify implements sections.Notifier.
func (c SectionCollector) Notify(ctx context.Context, ev sections.Event) error {
	if r, ok := c.Sink.(coremetrics.SectionChangeRecorder); ok {
		count := len(ev.IDs)
		if ev.Section != nil {
			count = 1
		}
		ts := ev.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		_ = r.RecordSectionChange(coremetrics.SectionChangeEvent{Type: string(ev.Type), Count: count, Time: ts})
	}
	if c.Next == nil {
		return nil
	}
	return c.Next.Notify(ctx, ev)
}
