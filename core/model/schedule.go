package model

import "encoding/json"

// Component distinguishes the lecture and lab parts of a section.
type Component string

const (
	Lecture Component = "lecture"
	Lab     Component = "lab"
)

// ScheduleRequest is the requested course load.
type ScheduleRequest struct {
	LectureUnits float64   `json:"lecture_units"`
	LectureDays  []Weekday `json:"lecture_days"`
	LabUnits     float64   `json:"lab_units"`
	LabDays      []Weekday `json:"lab_days"`
}

// ScheduleBlock is one timed block on one weekday.
// DurationMinutes always equals InstructionalMinutes + BreakMinutes.
type ScheduleBlock struct {
	DayOfWeek            Weekday   `json:"day_of_week"`
	Type                 Component `json:"type"`
	StartTime            string    `json:"start_time"`
	EndTime              string    `json:"end_time"`
	DurationMinutes      int       `json:"duration_minutes"`
	InstructionalMinutes int       `json:"instructional_minutes"`
	BreakMinutes         int       `json:"break_minutes"`
}

// ScheduleInfo summarizes one component.
type ScheduleInfo struct {
	ContactHoursForTerm        float64 `json:"contact_hours_for_term"`
	WeeklyContactHours         float64 `json:"weekly_contact_hours"`
	TotalScheduledContactHours float64 `json:"total_scheduled_contact_hours"`
	ContactHoursPerDay         float64 `json:"contact_hours_per_day"`
	TotalBreakMinutesPerDay    int     `json:"total_break_minutes_per_day"`
	ActualMeetingDays          int     `json:"actual_meeting_days"`
}

// GeneratedSchedule is the engine's result. Blocks are sorted by weekday then start time.
type GeneratedSchedule struct {
	LectureInfo    ScheduleInfo    `json:"lecture_info"`
	LabInfo        ScheduleInfo    `json:"lab_info"`
	ScheduleBlocks []ScheduleBlock `json:"schedule_blocks"`
	Warnings       []Warning       `json:"warnings"`
}

// HasFatal reports whether any warning blocks the schedule.
func (g GeneratedSchedule) HasFatal() bool {
	for _, w := range g.Warnings {
		if w.Kind == Fatal {
			return true
		}
	}
	return false
}

// BlocksOf returns the blocks of the given component, keeping order.
func (g GeneratedSchedule) BlocksOf(c Component) []ScheduleBlock {
	var out []ScheduleBlock
	for _, b := range g.ScheduleBlocks {
		if b.Type == c {
			out = append(out, b)
		}
	}
	return out
}

// WarningKind separates blocking errors from informational notices.
type WarningKind int

const (
	Advisory WarningKind = iota
	Fatal
)

// FatalPrefix marks fatal warnings in their legacy string form.
const FatalPrefix = "ERROR: "

func (k WarningKind) String() string {
	if k == Fatal {
		return "fatal"
	}
	return "advisory"
}

// MarshalJSON encodes the kind by name.
func (k WarningKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// UnmarshalJSON decodes "fatal" or "advisory".
func (k *WarningKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "fatal" {
		*k = Fatal
	} else {
		*k = Advisory
	}
	return nil
}

// Warning is a tagged engine message.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// String renders the legacy single-string form, prefixing fatal messages.
func (w Warning) String() string {
	if w.Kind == Fatal {
		return FatalPrefix + w.Message
	}
	return w.Message
}
