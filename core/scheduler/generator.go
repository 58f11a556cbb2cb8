package scheduler

import (
	"fmt"

	"github.com/kilianp07/sectionplanner/core/model"
)

func emptySchedule() model.GeneratedSchedule {
	return model.GeneratedSchedule{
		ScheduleBlocks: []model.ScheduleBlock{},
		Warnings:       []model.Warning{},
	}
}

// Generate builds the weekly timetable for a request. startTime is the
// lecture start (HH:MM); labStartTime is optional and empty when unset.
//
// Infeasibility is reported through fatal warnings, never as an error. The
// error return is reserved for malformed input: clock strings, term dates,
// holidays or weekday labels.
func Generate(req model.ScheduleRequest, rc model.RuleAndTermContext, startTime, labStartTime string) (model.GeneratedSchedule, error) {
	lectureStart, err := ParseClock(startTime)
	if err != nil {
		return model.GeneratedSchedule{}, fmt.Errorf("start time: %w", err)
	}
	var labStart *int
	if labStartTime != "" {
		v, err := ParseClock(labStartTime)
		if err != nil {
			return model.GeneratedSchedule{}, fmt.Errorf("lab start time: %w", err)
		}
		labStart = &v
	}
	lectureDays, err := model.NormalizeDays(req.LectureDays)
	if err != nil {
		return model.GeneratedSchedule{}, fmt.Errorf("lecture days: %w", err)
	}
	labDays, err := model.NormalizeDays(req.LabDays)
	if err != nil {
		return model.GeneratedSchedule{}, fmt.Errorf("lab days: %w", err)
	}

	out := emptySchedule()
	if req.LectureUnits == 0 && req.LabUnits == 0 {
		return out, nil
	}

	span, holidays, err := sessionContext(rc)
	if err != nil {
		return model.GeneratedSchedule{}, err
	}
	method := rc.Attendance.MethodFor(rc.Term, rc.Session)
	weeks := rc.Session.Weeks

	plan := func(units float64, days []model.Weekday, c model.Component) (ComponentPlan, bool) {
		meetings := CountMeetingDays(span, weeks, holidays, days, method)
		p, warnings, ok := PlanComponent(units, meetings, weeks, c)
		out.Warnings = append(out.Warnings, warnings...)
		return p, ok
	}
	lecture, lectureOK := plan(req.LectureUnits, lectureDays, model.Lecture)
	lab, labOK := plan(req.LabUnits, labDays, model.Lab)

	out.LectureInfo = lecture.Info
	out.LabInfo = lab.Info
	if !lectureOK || !labOK {
		return out, nil
	}

	out.ScheduleBlocks = Assemble(TimelineInput{
		Lecture:      Placement{Days: lectureDays, Blocks: lecture.Blocks},
		Lab:          Placement{Days: labDays, Blocks: lab.Blocks},
		LectureStart: lectureStart,
		LabStart:     labStart,
	})
	return out, nil
}

func sessionContext(rc model.RuleAndTermContext) (Span, HolidaySet, error) {
	start, err := model.ParseDate(rc.Term.StartDate)
	if err != nil {
		return Span{}, nil, fmt.Errorf("term %s start: %w", rc.Term.ID, err)
	}
	end, err := model.ParseDate(rc.Term.EndDate)
	if err != nil {
		return Span{}, nil, fmt.Errorf("term %s end: %w", rc.Term.ID, err)
	}
	holidays, err := NewHolidaySet(rc.Term.Holidays)
	if err != nil {
		return Span{}, nil, fmt.Errorf("term %s holidays: %w", rc.Term.ID, err)
	}
	return SessionSpan(start, end, rc.Session.Method, rc.Session.Weeks), holidays, nil
}
