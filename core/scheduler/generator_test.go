package scheduler

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/sectionplanner/core/model"
)

func TestGenerateLectureAndLab(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 3, LectureDays: mwf, LabUnits: 1, LabDays: tth}
	out, err := Generate(req, ruleContext("full", model.IgnoreHolidays), "08:00", "")
	require.NoError(t, err)

	assert.Equal(t, 51, out.LectureInfo.ActualMeetingDays)
	assert.Equal(t, 1.1, out.LectureInfo.ContactHoursPerDay)
	assert.Equal(t, 34, out.LabInfo.ActualMeetingDays)
	assert.Equal(t, 1.6, out.LabInfo.ContactHoursPerDay)
	assert.Len(t, out.Warnings, 2)
	assert.False(t, out.HasFatal())
	assert.Len(t, out.ScheduleBlocks, 5)

	want := []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}
	for i, b := range out.ScheduleBlocks {
		assert.Equal(t, want[i], b.DayOfWeek)
		assert.Equal(t, "08:00", b.StartTime)
		assert.Equal(t, b.InstructionalMinutes+b.BreakMinutes, b.DurationMinutes)
	}
}

func TestGenerateHolidayAware(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 3, LectureDays: mwf}
	out, err := Generate(req, ruleContext("full", model.CountHolidays), "08:00", "")
	require.NoError(t, err)
	assert.Equal(t, 49, out.LectureInfo.ActualMeetingDays)
	assert.Empty(t, out.Warnings)
	assert.InDelta(t, 53.9, out.LectureInfo.TotalScheduledContactHours, 1e-9)
}

func TestGenerateSharedDayPassingTime(t *testing.T) {
	req := model.ScheduleRequest{
		LectureUnits: 3, LectureDays: mwf,
		LabUnits: 1, LabDays: []model.Weekday{model.Wednesday, model.Monday},
	}
	out, err := Generate(req, ruleContext("full", model.IgnoreHolidays), "10:05", "")
	require.NoError(t, err)
	for _, day := range []model.Weekday{model.Monday, model.Wednesday} {
		var lectureEnd, labStart string
		for _, b := range out.ScheduleBlocks {
			if b.DayOfWeek != day {
				continue
			}
			if b.Type == model.Lecture {
				lectureEnd = b.EndTime
			} else if labStart == "" {
				labStart = b.StartTime
			}
		}
		end, err := ParseClock(lectureEnd)
		require.NoError(t, err)
		assert.Equal(t, FormatClock(end+PassingMinutes), labStart, day)
	}
}

func TestGenerateExplicitLabStart(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 3, LectureDays: mwf, LabUnits: 1, LabDays: []model.Weekday{model.Monday, model.Saturday}}
	out, err := Generate(req, ruleContext("full", model.IgnoreHolidays), "08:00", "13:00")
	require.NoError(t, err)
	for _, b := range out.BlocksOf(model.Lab) {
		assert.Equal(t, "13:00", b.StartTime)
	}
}

func TestGenerateInfeasibleComponentKeepsSiblingInfo(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 1, LectureDays: mwf, LabUnits: 1, LabDays: tth}
	out, err := Generate(req, ruleContext("full", model.IgnoreHolidays), "08:00", "")
	require.NoError(t, err)
	assert.True(t, out.HasFatal())
	assert.Empty(t, out.ScheduleBlocks)
	assert.Equal(t, model.ScheduleInfo{}, out.LectureInfo)
	assert.Equal(t, 1.6, out.LabInfo.ContactHoursPerDay)
	assert.Equal(t, "ERROR: Minimum of 1.0 CH/day required. current: 0.35.", out.Warnings[0].String())
}

func TestGenerateUnitsWithoutDays(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 3}
	out, err := Generate(req, ruleContext("full", model.CountHolidays), "08:00", "")
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, model.Fatal, out.Warnings[0].Kind)
	assert.Empty(t, out.ScheduleBlocks)
	assert.Equal(t, model.ScheduleInfo{}, out.LectureInfo)
}

func TestGenerateZeroLectureUnitsWithDays(t *testing.T) {
	req := model.ScheduleRequest{LectureDays: mwf, LabUnits: 1, LabDays: []model.Weekday{model.Monday}}
	out, err := Generate(req, ruleContext("full", model.IgnoreHolidays), "09:00", "")
	require.NoError(t, err)
	require.Len(t, out.ScheduleBlocks, 3)
	assert.Equal(t, "09:00", out.ScheduleBlocks[0].StartTime)
	assert.Equal(t, "12:05", out.ScheduleBlocks[2].EndTime)
	assert.Equal(t, 3.2, out.LabInfo.ContactHoursPerDay)
	assert.Equal(t, 25, out.LabInfo.TotalBreakMinutesPerDay)
}

func TestGenerateEmptyRequest(t *testing.T) {
	out, err := Generate(model.ScheduleRequest{LectureDays: mwf}, ruleContext("full", model.IgnoreHolidays), "08:00", "")
	require.NoError(t, err)
	assert.Empty(t, out.ScheduleBlocks)
	assert.Empty(t, out.Warnings)
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"schedule_blocks":[]`)
	assert.Contains(t, string(b), `"warnings":[]`)
}

func TestGenerateMalformedInput(t *testing.T) {
	rc := ruleContext("full", model.IgnoreHolidays)
	req := model.ScheduleRequest{LectureUnits: 3, LectureDays: mwf}

	_, err := Generate(req, rc, "8am", "")
	assert.True(t, errors.Is(err, ErrInvalidClock))
	_, err = Generate(req, rc, "08:00", "25:00")
	assert.True(t, errors.Is(err, ErrInvalidClock))
	_, err = Generate(model.ScheduleRequest{LectureUnits: 3, LectureDays: []model.Weekday{"Monday"}}, rc, "08:00", "")
	assert.True(t, errors.Is(err, model.ErrUnknownWeekday))

	rc.Term.Holidays = []string{"not-a-date"}
	_, err = Generate(req, rc, "08:00", "")
	assert.True(t, errors.Is(err, model.ErrInvalidDate))
}

func TestGenerateIsIdempotent(t *testing.T) {
	req := model.ScheduleRequest{LectureUnits: 2.5, LectureDays: tth, LabUnits: 1.5, LabDays: []model.Weekday{model.Thursday, model.Friday}}
	rc := ruleContext("late", model.CountHolidays)
	first, err := Generate(req, rc, "11:15", "")
	require.NoError(t, err)
	second, err := Generate(req, rc, "11:15", "")
	require.NoError(t, err)
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.True(t, bytes.Equal(a, b))
}

func TestOfficialEndTimeMatchesGenerate(t *testing.T) {
	rc := ruleContext("full", model.IgnoreHolidays)
	for _, units := range []float64{1, 2, 3, 3.5, 4, 5} {
		for _, days := range [][]model.Weekday{mwf, tth, {model.Monday}} {
			req := model.ScheduleRequest{LectureUnits: units, LectureDays: days, LabUnits: units / 2, LabDays: days}
			out, err := Generate(req, rc, "08:00", "14:00")
			require.NoError(t, err)
			if out.HasFatal() {
				continue
			}
			lectureEnd, err := OfficialEndTime(units, len(days), "08:00", rc.Session.Weeks, model.Lecture)
			require.NoError(t, err)
			labEnd, err := OfficialEndTime(units/2, len(days), "14:00", rc.Session.Weeks, model.Lab)
			require.NoError(t, err)
			for _, b := range out.ScheduleBlocks {
				if b.Type == model.Lecture && b.EndTime > lectureEnd {
					t.Fatalf("%.1f units: lecture block ends %s after %s", units, b.EndTime, lectureEnd)
				}
			}
			lec := out.BlocksOf(model.Lecture)
			lab := out.BlocksOf(model.Lab)
			assert.Equal(t, lectureEnd, lec[len(lec)-1].EndTime)
			assert.Equal(t, labEnd, lab[len(lab)-1].EndTime)
		}
	}
}

func TestOfficialEndTime(t *testing.T) {
	end, err := OfficialEndTime(3, 3, "08:00", 17, model.Lecture)
	require.NoError(t, err)
	assert.Equal(t, "09:05", end)

	end, err = OfficialEndTime(1, 2, "08:00", 17, model.Lab)
	require.NoError(t, err)
	assert.Equal(t, "09:20", end)

	for _, args := range [][3]float64{{0, 3, 17}, {3, 0, 17}, {3, 3, 0}} {
		end, err := OfficialEndTime(args[0], int(args[1]), "08:00", int(args[2]), model.Lecture)
		require.NoError(t, err)
		assert.Empty(t, end)
	}
	_, err = OfficialEndTime(3, 3, "bad", 17, model.Lecture)
	assert.Error(t, err)
}
