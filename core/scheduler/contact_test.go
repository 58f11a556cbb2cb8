package scheduler

import (
	"math"
	"strings"
	"testing"

	"github.com/kilianp07/sectionplanner/core/model"
)

func TestPlanComponentLectureScenario(t *testing.T) {
	plan, warnings, ok := PlanComponent(3, 51, 17, model.Lecture)
	if !ok {
		t.Fatalf("expected feasible plan")
	}
	if plan.Info.ContactHoursForTerm != 54 || plan.Info.ContactHoursPerDay != 1.1 || plan.Info.ActualMeetingDays != 51 {
		t.Fatalf("bad info %+v", plan.Info)
	}
	if math.Abs(plan.Info.TotalScheduledContactHours-56.1) > 1e-9 {
		t.Fatalf("scheduled %.4f", plan.Info.TotalScheduledContactHours)
	}
	if math.Abs(plan.Info.WeeklyContactHours-54.0/17) > 1e-9 {
		t.Fatalf("weekly %.4f", plan.Info.WeeklyContactHours)
	}
	if plan.Info.TotalBreakMinutesPerDay != 10 {
		t.Fatalf("break minutes %d", plan.Info.TotalBreakMinutesPerDay)
	}
	if len(warnings) != 1 || warnings[0].Kind != model.Advisory {
		t.Fatalf("expected one advisory, got %+v", warnings)
	}
	if warnings[0].Message != "Ideal daily time of 1.06 CH for the lecture was rounded to 1.1 CH/day." {
		t.Fatalf("unexpected message %q", warnings[0].Message)
	}
	if len(plan.Blocks) != 1 || plan.Blocks[0] != (BlockTemplate{model.Lecture, 65, 55, 10}) {
		t.Fatalf("blocks %+v", plan.Blocks)
	}
}

func TestPlanComponentLabScenario(t *testing.T) {
	plan, warnings, ok := PlanComponent(1, 34, 17, model.Lab)
	if !ok {
		t.Fatalf("expected feasible plan")
	}
	if plan.Info.ContactHoursForTerm != 54 || plan.Info.ContactHoursPerDay != 1.6 {
		t.Fatalf("bad info %+v", plan.Info)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "1.59 CH for the lab was rounded to 1.6") {
		t.Fatalf("warnings %+v", warnings)
	}
	if len(plan.Blocks) != 1 || plan.Blocks[0].InstructionalMinutes != 80 || plan.Blocks[0].BreakMinutes != 0 {
		t.Fatalf("blocks %+v", plan.Blocks)
	}
}

func TestPlanComponentNoRoundingWarning(t *testing.T) {
	_, warnings, ok := PlanComponent(3, 54, 18, model.Lecture)
	if !ok || len(warnings) != 0 {
		t.Fatalf("expected silent plan, got %+v", warnings)
	}
	// 54/49 = 1.102 rounds within tolerance.
	_, warnings, ok = PlanComponent(3, 49, 17, model.Lecture)
	if !ok || len(warnings) != 0 {
		t.Fatalf("expected silent plan, got %+v", warnings)
	}
}

func TestPlanComponentMinimumLoad(t *testing.T) {
	for _, c := range []struct {
		units float64
		days  int
		ok    bool
	}{
		{1, 51, false}, // 18/51 = 0.35
		{2.5, 51, false},
		{3, 54, true}, // exactly 1.0
		{3, 55, false},
		{0.25, 4, true},
	} {
		plan, warnings, ok := PlanComponent(c.units, c.days, 17, model.Lecture)
		if ok != c.ok {
			t.Fatalf("units %.2f days %d: ok=%v", c.units, c.days, ok)
		}
		if !ok {
			if len(warnings) != 1 || warnings[0].Kind != model.Fatal {
				t.Fatalf("expected a fatal warning, got %+v", warnings)
			}
			if !strings.HasPrefix(warnings[0].Message, "Minimum of 1.0 CH/day required. current: ") {
				t.Fatalf("message %q", warnings[0].Message)
			}
			if len(plan.Blocks) != 0 {
				t.Fatalf("infeasible plan has blocks")
			}
		}
	}
}

func TestPlanComponentZeroCases(t *testing.T) {
	plan, warnings, ok := PlanComponent(0, 51, 17, model.Lecture)
	if !ok || len(warnings) != 0 || len(plan.Blocks) != 0 || plan.Info != (model.ScheduleInfo{}) {
		t.Fatalf("zero units should be an empty feasible plan")
	}
	plan, warnings, ok = PlanComponent(3, 0, 17, model.Lab)
	if ok || len(plan.Blocks) != 0 {
		t.Fatalf("zero meeting days must be infeasible")
	}
	want := "The selected days for the lab do not occur in the chosen session."
	if len(warnings) != 1 || warnings[0].Kind != model.Fatal || warnings[0].Message != want {
		t.Fatalf("warnings %+v", warnings)
	}
}

func TestScheduledHoursInvariant(t *testing.T) {
	for units := 0.25; units <= 6; units += 0.25 {
		for days := 1; days <= 90; days += 7 {
			for _, c := range []model.Component{model.Lecture, model.Lab} {
				plan, _, ok := PlanComponent(units, days, 17, c)
				if !ok {
					continue
				}
				want := plan.Info.ContactHoursPerDay * float64(plan.Info.ActualMeetingDays)
				if math.Abs(plan.Info.TotalScheduledContactHours-want) > 1e-9 {
					t.Fatalf("%s %.2f/%d: scheduled %.3f want %.3f", c, units, days, plan.Info.TotalScheduledContactHours, want)
				}
				sum := 0
				for _, b := range plan.Blocks {
					sum += b.DurationMinutes
				}
				if sum != Metrics(plan.Info.ContactHoursPerDay).TotalClockMinutes {
					t.Fatalf("%s %.2f/%d: blocks sum %d", c, units, days, sum)
				}
			}
		}
	}
}
