package scheduler

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/sectionplanner/core/model"
)

const (
	// MinutesPerContactHour is the instructional length of one contact hour.
	MinutesPerContactHour = 50
	// StandardBreakMinutes separates consecutive 50-minute segments.
	StandardBreakMinutes = 10
)

// TimeMetrics describes the clock time needed for one day's contact hours.
type TimeMetrics struct {
	TotalClockMinutes    int
	InstructionalMinutes int
	StandardBreaks       int
	ManualBreak          int
}

// BreakMinutes is the day's total break time.
func (m TimeMetrics) BreakMinutes() int {
	return m.StandardBreaks*StandardBreakMinutes + m.ManualBreak
}

// manualBreak maps the tenth-of-an-hour remainder to a trailing break:
// .1 needs 10 minutes, .2 needs 5, anything else none.
func manualBreak(contactHours float64) int {
	switch scalar.Round(contactHours-math.Floor(contactHours), 1) {
	case 0.1:
		return 10
	case 0.2:
		return 5
	}
	return 0
}

// Metrics computes the clock layout for a per-day contact-hour figure.
func Metrics(contactHoursPerDay float64) TimeMetrics {
	instructional := contactHoursPerDay * MinutesPerContactHour
	standard := 0
	if instructional > MinutesPerContactHour {
		standard = int(math.Floor(instructional/MinutesPerContactHour)) - 1
	}
	manual := manualBreak(contactHoursPerDay)
	total := int(math.Round(instructional + float64(standard*StandardBreakMinutes+manual)))
	return TimeMetrics{
		TotalClockMinutes:    total,
		InstructionalMinutes: total - standard*StandardBreakMinutes - manual,
		StandardBreaks:       standard,
		ManualBreak:          manual,
	}
}

// BlockTemplate is a day-agnostic block without start or end time.
type BlockTemplate struct {
	Type                 model.Component
	DurationMinutes      int
	InstructionalMinutes int
	BreakMinutes         int
}

// Decompose splits one day into 50-minute segments each followed by a
// standard break, then a final segment holding the remaining instruction and
// any manual break. Durations sum to Metrics(contactHoursPerDay).TotalClockMinutes.
func Decompose(contactHoursPerDay float64, c model.Component) []BlockTemplate {
	return decompose(Metrics(contactHoursPerDay), c)
}

func decompose(m TimeMetrics, c model.Component) []BlockTemplate {
	var blocks []BlockTemplate
	remaining := m.InstructionalMinutes
	breaks := m.StandardBreaks
	for remaining > 0 {
		b := BlockTemplate{Type: c, InstructionalMinutes: remaining}
		if breaks > 0 {
			b.InstructionalMinutes = MinutesPerContactHour
			b.BreakMinutes = StandardBreakMinutes
			breaks--
		}
		b.DurationMinutes = b.InstructionalMinutes + b.BreakMinutes
		blocks = append(blocks, b)
		remaining -= b.InstructionalMinutes
	}
	if m.ManualBreak > 0 && len(blocks) > 0 {
		last := &blocks[len(blocks)-1]
		last.BreakMinutes += m.ManualBreak
		last.DurationMinutes += m.ManualBreak
	}
	return blocks
}
