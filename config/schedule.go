package config

import (
	"github.com/kilianp07/sectionplanner/core/scheduler"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

// ScheduleConfig holds generation and display defaults.
type ScheduleConfig struct {
	DefaultStartTime string `json:"default_start_time"`
	TimeFormat       string `json:"time_format"`
}

// SetDefaults applies sane defaults.
func (c *ScheduleConfig) SetDefaults() {
	if c.DefaultStartTime == "" {
		c.DefaultStartTime = "08:00"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = string(export.Format12h)
	}
}

// Validate checks mandatory fields.
func (c ScheduleConfig) Validate() error {
	if _, err := scheduler.ParseClock(c.DefaultStartTime); err != nil {
		return err
	}
	_, err := export.ParseTimeFormat(c.TimeFormat)
	return err
}

// Format returns the parsed time format, falling back to 12h.
func (c ScheduleConfig) Format() export.TimeFormat {
	f, err := export.ParseTimeFormat(c.TimeFormat)
	if err != nil {
		return export.Format12h
	}
	return f
}
