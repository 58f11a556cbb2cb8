package scheduler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/sectionplanner/core/model"
)

const (
	// LectureRate is the contact hours required per lecture unit over a term.
	LectureRate = 18.0
	// LabRate is the contact hours required per lab unit over a term.
	LabRate = 54.0
	// MinContactHoursPerDay is the smallest feasible daily load.
	MinContactHoursPerDay = 1.0

	roundingTolerance = 0.01
)

// Rate returns the contact hours per unit for a component.
func Rate(c model.Component) float64 {
	if c == model.Lab {
		return LabRate
	}
	return LectureRate
}

// dailyContactHours returns the ideal per-day figure and its value rounded to
// the nearest tenth of an hour.
func dailyContactHours(total float64, meetingDays int) (ideal, rounded float64) {
	ideal = total / float64(meetingDays)
	return ideal, scalar.Round(ideal, 1)
}

// ComponentPlan is the per-day layout of one component.
type ComponentPlan struct {
	Blocks []BlockTemplate
	Info   model.ScheduleInfo
}

// PlanComponent converts units into a daily plan for a component meeting
// meetingDays times over a session of weeks weeks. The boolean is false when
// the component is infeasible; the returned warnings then contain a fatal
// entry. A component without units yields an empty plan and no warning.
func PlanComponent(units float64, meetingDays, weeks int, c model.Component) (ComponentPlan, []model.Warning, bool) {
	total := units * Rate(c)
	if total == 0 {
		return ComponentPlan{}, nil, true
	}
	if meetingDays == 0 {
		return ComponentPlan{}, []model.Warning{{
			Kind:    model.Fatal,
			Message: fmt.Sprintf("The selected days for the %s do not occur in the chosen session.", c),
		}}, false
	}

	ideal, perDay := dailyContactHours(total, meetingDays)
	if ideal < MinContactHoursPerDay {
		return ComponentPlan{}, []model.Warning{{
			Kind:    model.Fatal,
			Message: fmt.Sprintf("Minimum of %.1f CH/day required. current: %.2f.", MinContactHoursPerDay, ideal),
		}}, false
	}

	var warnings []model.Warning
	if math.Abs(perDay-ideal) > roundingTolerance {
		warnings = append(warnings, model.Warning{
			Kind:    model.Advisory,
			Message: fmt.Sprintf("Ideal daily time of %.2f CH for the %s was rounded to %.1f CH/day.", ideal, c, perDay),
		})
	}

	m := Metrics(perDay)
	info := model.ScheduleInfo{
		ContactHoursForTerm:        total,
		TotalScheduledContactHours: perDay * float64(meetingDays),
		ContactHoursPerDay:         perDay,
		TotalBreakMinutesPerDay:    m.BreakMinutes(),
		ActualMeetingDays:          meetingDays,
	}
	if weeks > 0 {
		info.WeeklyContactHours = total / float64(weeks)
	}
	return ComponentPlan{Blocks: decompose(m, c), Info: info}, warnings, true
}
