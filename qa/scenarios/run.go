package scenarios

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/sectionplanner/core/cache"
	"github.com/kilianp07/sectionplanner/core/catalog"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/planner"
	"github.com/kilianp07/sectionplanner/infra/logger"
	"github.com/kilianp07/sectionplanner/infra/metrics"
)

type staticSource []model.AcademicTerm

func (s staticSource) Terms(context.Context) ([]model.AcademicTerm, error) { return s, nil }

//nolint:gocyclo
func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	attendance := filepath.Join(t.TempDir(), "attendance.md")
	if err := os.WriteFile(attendance, []byte(sc.attendanceMarkdown()), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	cat := catalog.New(staticSource{sc.Term}, attendance, "")
	if err := cat.Reload(context.Background()); err != nil {
		t.Fatalf("catalog: %v", err)
	}

	req, err := sc.Request.ToModel()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	p := planner.New(cat, cache.NewMemory(0), 0, sink, logger.NopLogger{}, "")
	g, err := p.Generate(context.Background(), planner.GenerateInput{
		Request:      req,
		TermID:       sc.Term.ID,
		SessionID:    sc.Session,
		StartTime:    sc.StartTime,
		LabStartTime: sc.LabStartTime,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	exp := sc.Expected
	if g.HasFatal() != exp.Fatal {
		t.Errorf("fatal = %v, want %v (warnings %v)", g.HasFatal(), exp.Fatal, g.Warnings)
	}
	if exp.Blocks > 0 && len(g.ScheduleBlocks) != exp.Blocks {
		t.Errorf("blocks = %d, want %d", len(g.ScheduleBlocks), exp.Blocks)
	}
	if exp.Fatal && len(g.ScheduleBlocks) != 0 {
		t.Errorf("fatal schedule has %d blocks", len(g.ScheduleBlocks))
	}
	for i, want := range exp.FirstBlocks {
		if i >= len(g.ScheduleBlocks) {
			t.Errorf("missing block %d", i)
			break
		}
		got := g.ScheduleBlocks[i]
		if string(got.DayOfWeek) != want.Day || string(got.Type) != want.Type || got.StartTime != want.Start || got.EndTime != want.End {
			t.Errorf("block %d = %s %s %s-%s, want %s %s %s-%s", i,
				got.DayOfWeek, got.Type, got.StartTime, got.EndTime, want.Day, want.Type, want.Start, want.End)
		}
	}
	checkFloat(t, "lecture CH/day", g.LectureInfo.ContactHoursPerDay, exp.LectureCHPerDay)
	checkFloat(t, "lab CH/day", g.LabInfo.ContactHoursPerDay, exp.LabCHPerDay)
	if exp.LectureMeetingDays > 0 && g.LectureInfo.ActualMeetingDays != exp.LectureMeetingDays {
		t.Errorf("lecture meeting days = %d, want %d", g.LectureInfo.ActualMeetingDays, exp.LectureMeetingDays)
	}
	if exp.LabMeetingDays > 0 && g.LabInfo.ActualMeetingDays != exp.LabMeetingDays {
		t.Errorf("lab meeting days = %d, want %d", g.LabInfo.ActualMeetingDays, exp.LabMeetingDays)
	}
	advisories := 0
	for _, w := range g.Warnings {
		if w.Kind == model.Advisory {
			advisories++
		}
	}
	if advisories != exp.Advisories {
		t.Errorf("advisories = %d, want %d (%v)", advisories, exp.Advisories, g.Warnings)
	}
	if exp.Outcome != "" {
		want := fmt.Sprintf(generationsText, exp.Outcome)
		if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "schedule_generations_total"); err != nil {
			t.Errorf("generation metric: %v", err)
		}
	}
}

const generationsText = `# HELP schedule_generations_total Total number of schedule generations by outcome
# TYPE schedule_generations_total counter
schedule_generations_total{outcome=%q} 1
`

func checkFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if want != 0 && math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
