// Package schedule exposes the scheduling engine over HTTP.
package schedule

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kilianp07/sectionplanner/api"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/planner"
	"github.com/kilianp07/sectionplanner/core/rules"
	"github.com/kilianp07/sectionplanner/core/scheduler"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

// Planner generates schedules and exposes the loaded catalog.
type Planner interface {
	Generate(ctx context.Context, in planner.GenerateInput) (model.GeneratedSchedule, error)
	Terms() ([]model.AcademicTerm, error)
	Rules() (rules.Set, error)
}

// NewGenerateHandler serves POST /api/schedule.
func NewGenerateHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var in planner.GenerateInput
		if err := api.DecodeJSON(r, &in); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		g, err := p.Generate(r.Context(), in)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, g)
	})
}

// NewTermsHandler serves GET /api/terms.
func NewTermsHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		terms, err := p.Terms()
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, terms)
	})
}

// NewRulesHandler serves GET /api/rules.
func NewRulesHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		set, err := p.Rules()
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, set)
	})
}

// EndTime is the response of the end-time endpoint.
type EndTime struct {
	EndTime string `json:"end_time"`
}

// NewEndTimeHandler serves GET /api/endtime?units=&days=&start=&weeks=&lab=.
// days is either a meeting-day count or a weekday list such as "Mon,Wed".
func NewEndTimeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		units, err := strconv.ParseFloat(q.Get("units"), 64)
		if err != nil {
			http.Error(w, "invalid units", http.StatusBadRequest)
			return
		}
		days, err := dayCount(q.Get("days"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		weeks, err := strconv.Atoi(q.Get("weeks"))
		if err != nil {
			http.Error(w, "invalid weeks", http.StatusBadRequest)
			return
		}
		c := model.Lecture
		if lab, _ := strconv.ParseBool(q.Get("lab")); lab {
			c = model.Lab
		}
		end, err := scheduler.OfficialEndTime(units, days, q.Get("start"), weeks, c)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, EndTime{EndTime: end})
	})
}

func dayCount(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid days %q", s)
		}
		return n, nil
	}
	days, err := model.ParseWeekdays(s)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// NewExportHandler serves POST /api/schedule/export?format=simple|detailed|csv|json&name=.
// The body is the same as for POST /api/schedule.
func NewExportHandler(p Planner, f export.TimeFormat) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "simple"
		}
		var in planner.GenerateInput
		if err := api.DecodeJSON(r, &in); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		g, err := p.Generate(r.Context(), in)
		if err != nil {
			api.Error(w, err)
			return
		}
		switch format {
		case "simple":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = fmt.Fprint(w, export.Simple(g, f))
		case "detailed":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = fmt.Fprint(w, export.Detailed(g, r.URL.Query().Get("name"), f))
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			if err := export.WriteCSV(w, g); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case "json":
			w.Header().Set("Content-Type", "application/json")
			if err := export.WriteJSON(w, g); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "unknown format "+format, http.StatusBadRequest)
		}
	})
}
