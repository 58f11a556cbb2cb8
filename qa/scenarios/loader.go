package scenarios

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/sectionplanner/core/model"
)

type RequestDef struct {
	LectureUnits float64  `yaml:"lecture_units"`
	LectureDays  []string `yaml:"lecture_days"`
	LabUnits     float64  `yaml:"lab_units"`
	LabDays      []string `yaml:"lab_days"`
}

func (r RequestDef) ToModel() (model.ScheduleRequest, error) {
	lecture, err := model.ParseWeekdays(strings.Join(r.LectureDays, ","))
	if err != nil {
		return model.ScheduleRequest{}, err
	}
	lab, err := model.ParseWeekdays(strings.Join(r.LabDays, ","))
	if err != nil {
		return model.ScheduleRequest{}, err
	}
	return model.ScheduleRequest{
		LectureUnits: r.LectureUnits,
		LectureDays:  lecture,
		LabUnits:     r.LabUnits,
		LabDays:      lab,
	}, nil
}

type BlockDef struct {
	Day   string `yaml:"day"`
	Type  string `yaml:"type"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Expected lists the checks of a scenario. Zero values are not checked,
// except Fatal.
type Expected struct {
	Blocks             int        `yaml:"blocks"`
	FirstBlocks        []BlockDef `yaml:"first_blocks"`
	LectureCHPerDay    float64    `yaml:"lecture_ch_per_day"`
	LabCHPerDay        float64    `yaml:"lab_ch_per_day"`
	LectureMeetingDays int        `yaml:"lecture_meeting_days"`
	LabMeetingDays     int        `yaml:"lab_meeting_days"`
	Fatal              bool       `yaml:"fatal"`
	Advisories         int        `yaml:"advisories"`
	Outcome            string     `yaml:"outcome"`
}

type Scenario struct {
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description,omitempty"`
	Term         model.AcademicTerm `yaml:"term"`
	Attendance   map[string]string  `yaml:"attendance"`
	Session      string             `yaml:"session"`
	Request      RequestDef         `yaml:"request"`
	StartTime    string             `yaml:"start_time"`
	LabStartTime string             `yaml:"lab_start_time,omitempty"`
	Expected     Expected           `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}

// attendanceMarkdown renders the scenario's rules in the attendance file
// format so they load through the regular rule parser.
func (sc *Scenario) attendanceMarkdown() string {
	keys := make([]string, 0, len(sc.Attendance))
	for k := range sc.Attendance {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "## %s\nMETHOD: %s\n\n", k, sc.Attendance[k])
	}
	return b.String()
}
