package export

import (
	"fmt"
	"strings"

	"github.com/kilianp07/sectionplanner/core/model"
)

var componentLabels = []struct {
	c     model.Component
	label string
}{
	{model.Lecture, "Lecture"},
	{model.Lab, "Lab"},
}

// Simple renders one line per component with its days and overall span:
//
//	Lecture: Mon/Wed/Fri (08:00 AM - 08:55 AM)
func Simple(g model.GeneratedSchedule, f TimeFormat) string {
	var b strings.Builder
	for _, cl := range componentLabels {
		blocks := g.BlocksOf(cl.c)
		if len(blocks) == 0 {
			continue
		}
		var days []model.Weekday
		seen := map[model.Weekday]bool{}
		first, last := blocks[0].StartTime, blocks[0].EndTime
		for _, blk := range blocks {
			if !seen[blk.DayOfWeek] {
				seen[blk.DayOfWeek] = true
				days = append(days, blk.DayOfWeek)
			}
			if minutes(blk.StartTime) < minutes(first) {
				first = blk.StartTime
			}
			if minutes(blk.EndTime) > minutes(last) {
				last = blk.EndTime
			}
		}
		fmt.Fprintf(&b, "%s: %s (%s - %s)\n", cl.label, model.JoinDays(days, "/"), WallClock(first, f), WallClock(last, f))
	}
	return strings.TrimSpace(b.String())
}

// Detailed lists every block under its weekday.
func Detailed(g model.GeneratedSchedule, sectionName string, f TimeFormat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Course Schedule: %s ---\n", sectionName)
	for _, day := range model.Weekdays {
		header := false
		for _, blk := range g.ScheduleBlocks {
			if blk.DayOfWeek != day {
				continue
			}
			if !header {
				fmt.Fprintf(&b, "%s:\n", day)
				header = true
			}
			fmt.Fprintf(&b, "  %s - %s (%s)\n", WallClock(blk.StartTime, f), WallClock(blk.EndTime, f), blk.Type)
		}
	}
	return strings.TrimSpace(b.String())
}

// Bulk summarizes saved sections for pasting into an email or ticket.
func Bulk(sections []model.SavedSection, terms []model.AcademicTerm) string {
	names := make(map[string]string, len(terms))
	for _, t := range terms {
		names[t.ID] = t.Name
	}
	var b strings.Builder
	for _, s := range sections {
		termName, ok := names[s.SelectedTermID]
		if !ok {
			termName = "Unknown"
		}
		fmt.Fprintf(&b, "======= %s =======\n", strings.ToUpper(s.Name))
		fmt.Fprintf(&b, "Term: %s\n", termName)
		fmt.Fprintf(&b, "Lecture: %s units, Days: %s\n", units(s.LectureUnits), model.JoinDays(s.LectureDays, ""))
		if s.LabUnits > 0 {
			fmt.Fprintf(&b, "Lab: %s units, Days: %s\n", units(s.LabUnits), model.JoinDays(s.LabDays, ""))
		}
		fmt.Fprintf(&b, "Start Time: %s", s.StartTime)
		if s.LabStartTime != "" {
			fmt.Fprintf(&b, " (Lab: %s)", s.LabStartTime)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// units prints 3 as "3" and 1.5 as "1.5".
func units(u float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", u), "0"), ".")
}
