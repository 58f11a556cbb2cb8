package config

import (
	"fmt"

	"github.com/kilianp07/sectionplanner/core/factory"
)

// CalendarConfig selects where academic terms come from.
type CalendarConfig struct {
	Source factory.ModuleConfig `json:"source"`
	// Watch reloads the calendar and rule files when they change on disk.
	Watch bool `json:"watch"`
}

// SetDefaults applies sane defaults.
func (c *CalendarConfig) SetDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = "file"
	}
	if c.Source.Type == "file" {
		if c.Source.Conf == nil {
			c.Source.Conf = map[string]any{}
		}
		if _, ok := c.Source.Conf["path"]; !ok {
			c.Source.Conf["path"] = "academic-calendar.yaml"
		}
	}
}

// Validate checks mandatory fields.
func (c CalendarConfig) Validate() error {
	if c.Source.Type == "" {
		return fmt.Errorf("source type is required")
	}
	return nil
}

// RulesConfig points at the markdown rule files. Empty paths load empty
// tables.
type RulesConfig struct {
	AttendancePath   string `json:"attendance_path"`
	ContactHoursPath string `json:"contact_hours_path"`
}
