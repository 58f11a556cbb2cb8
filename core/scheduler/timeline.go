package scheduler

import (
	"sort"

	"github.com/kilianp07/sectionplanner/core/model"
)

// PassingMinutes separates a lecture from a lab that follows it the same day.
const PassingMinutes = 10

// Placement is one component's block templates and selected days.
type Placement struct {
	Days   []model.Weekday
	Blocks []BlockTemplate
}

// TimelineInput holds both placements and start times in minutes after midnight.
// LabStart is nil when no explicit lab time was chosen.
type TimelineInput struct {
	Lecture      Placement
	Lab          Placement
	LectureStart int
	LabStart     *int
}

type timedBlock struct {
	block model.ScheduleBlock
	start int
}

// Assemble lays the templates onto each selected weekday. Lectures start at
// LectureStart. A lab starts at LabStart when set, otherwise PassingMinutes
// after that day's lecture, otherwise at LectureStart.
func Assemble(in TimelineInput) []model.ScheduleBlock {
	var timed []timedBlock
	lectureEnd := make(map[model.Weekday]int, len(in.Lecture.Days))

	for _, day := range in.Lecture.Days {
		end := layDay(&timed, day, in.LectureStart, in.Lecture.Blocks)
		if len(in.Lecture.Blocks) > 0 {
			lectureEnd[day] = end
		}
	}

	for _, day := range in.Lab.Days {
		start := in.LectureStart
		if in.LabStart != nil {
			start = *in.LabStart
		} else if end, ok := lectureEnd[day]; ok {
			start = end + PassingMinutes
		}
		layDay(&timed, day, start, in.Lab.Blocks)
	}

	sort.SliceStable(timed, func(i, j int) bool {
		di, dj := timed[i].block.DayOfWeek.Index(), timed[j].block.DayOfWeek.Index()
		if di != dj {
			return di < dj
		}
		return timed[i].start < timed[j].start
	})
	out := make([]model.ScheduleBlock, len(timed))
	for i, t := range timed {
		out[i] = t.block
	}
	return out
}

// layDay appends the templates back to back from start and returns the end.
func layDay(dst *[]timedBlock, day model.Weekday, start int, templates []BlockTemplate) int {
	current := start
	for _, tpl := range templates {
		end := current + tpl.DurationMinutes
		*dst = append(*dst, timedBlock{
			start: current,
			block: model.ScheduleBlock{
				DayOfWeek:            day,
				Type:                 tpl.Type,
				StartTime:            FormatClock(current),
				EndTime:              FormatClock(end),
				DurationMinutes:      tpl.DurationMinutes,
				InstructionalMinutes: tpl.InstructionalMinutes,
				BreakMinutes:         tpl.BreakMinutes,
			},
		})
		current = end
	}
	return current
}
