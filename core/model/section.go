package model

import "time"

// SavedSection is a persisted schedule request with its calendar selection.
type SavedSection struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	LectureUnits      float64   `json:"lecture_units"`
	LectureDays       []Weekday `json:"lecture_days"`
	LabUnits          float64   `json:"lab_units"`
	LabDays           []Weekday `json:"lab_days"`
	StartTime         string    `json:"start_time"`
	LabStartTime      string    `json:"lab_start_time,omitempty"`
	SelectedTermID    string    `json:"selected_term_id"`
	SelectedSessionID string    `json:"selected_session_id"`
	Timestamp         time.Time `json:"timestamp"`
}

// Request returns the schedule request stored in the section.
func (s SavedSection) Request() ScheduleRequest {
	return ScheduleRequest{
		LectureUnits: s.LectureUnits,
		LectureDays:  s.LectureDays,
		LabUnits:     s.LabUnits,
		LabDays:      s.LabDays,
	}
}
