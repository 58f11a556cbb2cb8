package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/catalog"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/planner"
	"github.com/kilianp07/sectionplanner/core/rules"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

type stubPlanner struct {
	got   planner.GenerateInput
	out   model.GeneratedSchedule
	err   error
	terms []model.AcademicTerm
}

func (s *stubPlanner) Generate(_ context.Context, in planner.GenerateInput) (model.GeneratedSchedule, error) {
	s.got = in
	return s.out, s.err
}

func (s *stubPlanner) Terms() ([]model.AcademicTerm, error) {
	if s.terms == nil {
		return nil, catalog.ErrNotLoaded
	}
	return s.terms, nil
}

func (s *stubPlanner) Rules() (rules.Set, error) {
	return rules.Set{Attendance: model.AttendanceRules{
		model.RuleSemesterFullTerm: {Method: model.IgnoreHolidays},
	}}, nil
}

func lectureSchedule() model.GeneratedSchedule {
	var blocks []model.ScheduleBlock
	for _, d := range []model.Weekday{model.Monday, model.Wednesday, model.Friday} {
		blocks = append(blocks, model.ScheduleBlock{
			DayOfWeek: d, Type: model.Lecture, StartTime: "08:00", EndTime: "09:05",
			DurationMinutes: 65, InstructionalMinutes: 55, BreakMinutes: 10,
		})
	}
	return model.GeneratedSchedule{ScheduleBlocks: blocks, Warnings: []model.Warning{}}
}

func TestGenerateHandler(t *testing.T) {
	p := &stubPlanner{out: lectureSchedule()}
	h := NewGenerateHandler(p)
	body := `{"request":{"lecture_units":3,"lecture_days":["Mon","Wed","Fri"],"lab_units":0,"lab_days":[]},"term_id":"fa2025","session_id":"full","start_time":"08:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if p.got.TermID != "fa2025" || p.got.Request.LectureUnits != 3 || len(p.got.Request.LectureDays) != 3 {
		t.Fatalf("unexpected input %+v", p.got)
	}
	var g model.GeneratedSchedule
	if err := json.NewDecoder(rr.Body).Decode(&g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.ScheduleBlocks) != 3 || g.ScheduleBlocks[0].EndTime != "09:05" {
		t.Fatalf("unexpected schedule %+v", g.ScheduleBlocks)
	}
}

func TestGenerateHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		err    error
		want   int
	}{
		{"method", http.MethodGet, "", nil, http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "{", nil, http.StatusBadRequest},
		{"unknown field", http.MethodPost, `{"bogus":1}`, nil, http.StatusBadRequest},
		{"unknown term", http.MethodPost, `{}`, fmt.Errorf("lookup: %w", calendar.ErrTermNotFound), http.StatusNotFound},
		{"engine failure", http.MethodPost, `{}`, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewGenerateHandler(&stubPlanner{err: c.err})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(c.method, "/api/schedule", strings.NewReader(c.body)))
			if rr.Code != c.want {
				t.Fatalf("expected %d, got %d", c.want, rr.Code)
			}
		})
	}
}

func TestTermsAndRulesHandlers(t *testing.T) {
	p := &stubPlanner{}
	rr := httptest.NewRecorder()
	NewTermsHandler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/terms", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before load, got %d", rr.Code)
	}

	p.terms = []model.AcademicTerm{{ID: "fa2025", Name: "Fall 2025"}}
	rr = httptest.NewRecorder()
	NewTermsHandler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/terms", nil))
	var terms []model.AcademicTerm
	if err := json.NewDecoder(rr.Body).Decode(&terms); err != nil || len(terms) != 1 || terms[0].ID != "fa2025" {
		t.Fatalf("unexpected terms %v (%v)", terms, err)
	}

	rr = httptest.NewRecorder()
	NewRulesHandler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	if !strings.Contains(rr.Body.String(), `"SEMESTER_FULL_TERM"`) {
		t.Fatalf("rules body missing key: %s", rr.Body.String())
	}
}

func TestEndTimeHandler(t *testing.T) {
	cases := []struct {
		query string
		code  int
		end   string
	}{
		{"units=3&days=3&start=08:00&weeks=17", http.StatusOK, "09:05"},
		{"units=1&days=Tue,Thu&start=08:00&weeks=17&lab=true", http.StatusOK, "09:20"},
		{"units=0&days=3&start=08:00&weeks=17", http.StatusOK, ""},
		{"units=x&days=3&start=08:00&weeks=17", http.StatusBadRequest, ""},
		{"units=3&days=Funday&start=08:00&weeks=17", http.StatusBadRequest, ""},
		{"units=3&days=3&start=8am&weeks=17", http.StatusBadRequest, ""},
	}
	h := NewEndTimeHandler()
	for _, c := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/endtime?"+c.query, nil))
		if rr.Code != c.code {
			t.Fatalf("%s: expected %d, got %d", c.query, c.code, rr.Code)
		}
		if c.code != http.StatusOK {
			continue
		}
		var out EndTime
		if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.EndTime != c.end {
			t.Fatalf("%s: expected %q, got %q", c.query, c.end, out.EndTime)
		}
	}
}

func TestExportHandler(t *testing.T) {
	h := NewExportHandler(&stubPlanner{out: lectureSchedule()}, export.Format12h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule/export", strings.NewReader(`{}`)))
	if got := rr.Body.String(); got != "Lecture: Mon/Wed/Fri (08:00 AM - 09:05 AM)" {
		t.Fatalf("unexpected simple export %q", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule/export?format=detailed&name=BIO+101", strings.NewReader(`{}`)))
	if !strings.HasPrefix(rr.Body.String(), "--- Course Schedule: BIO 101 ---") {
		t.Fatalf("unexpected detailed export %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule/export?format=pdf", strings.NewReader(`{}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rr.Code)
	}
}
