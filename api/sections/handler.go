// Package sections exposes saved sections over HTTP.
package sections

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kilianp07/sectionplanner/api"
	"github.com/kilianp07/sectionplanner/core/model"
	coresections "github.com/kilianp07/sectionplanner/core/sections"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

// Service is the saved-section behavior the handlers need.
type Service interface {
	List(ctx context.Context) ([]model.SavedSection, error)
	Get(ctx context.Context, id string) (model.SavedSection, error)
	Save(ctx context.Context, d coresections.Draft, currentID string) (model.SavedSection, error)
	Rename(ctx context.Context, id, name string) (model.SavedSection, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
	Clear(ctx context.Context) error
}

// TermLister provides the calendar used by exports.
type TermLister interface {
	Terms() ([]model.AcademicTerm, error)
}

// SaveRequest is the body of POST /api/sections. CurrentID names the
// section being edited; when it is empty or unknown a new section is
// created.
type SaveRequest struct {
	coresections.Draft
	CurrentID string `json:"current_id,omitempty"`
}

// RenameRequest is the body of PUT /api/sections/{id}.
type RenameRequest struct {
	Name string `json:"name"`
}

// ReorderRequest is the body of POST /api/sections/reorder.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// Register mounts the section routes on mux.
func Register(mux *http.ServeMux, svc Service, terms TermLister, wrap func(http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("/api/sections", wrap(NewCollectionHandler(svc)))
	mux.Handle("/api/sections/{id}", wrap(NewItemHandler(svc)))
	mux.Handle("/api/sections/reorder", wrap(NewReorderHandler(svc)))
	mux.Handle("/api/sections/export", wrap(NewExportHandler(svc, terms)))
}

// NewCollectionHandler serves GET (list), POST (save) and DELETE (clear)
// on /api/sections.
func NewCollectionHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list, err := svc.List(r.Context())
			if err != nil {
				api.Error(w, err)
				return
			}
			if list == nil {
				list = []model.SavedSection{}
			}
			api.WriteJSON(w, http.StatusOK, list)
		case http.MethodPost:
			var req SaveRequest
			if err := api.DecodeJSON(r, &req); err != nil {
				http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
				return
			}
			sec, err := svc.Save(r.Context(), req.Draft, req.CurrentID)
			if err != nil {
				api.Error(w, err)
				return
			}
			api.WriteJSON(w, http.StatusOK, sec)
		case http.MethodDelete:
			if err := svc.Clear(r.Context()); err != nil {
				api.Error(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewItemHandler serves GET, PUT (rename) and DELETE on /api/sections/{id}.
func NewItemHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		switch r.Method {
		case http.MethodGet:
			sec, err := svc.Get(r.Context(), id)
			if err != nil {
				api.Error(w, err)
				return
			}
			api.WriteJSON(w, http.StatusOK, sec)
		case http.MethodPut:
			var req RenameRequest
			if err := api.DecodeJSON(r, &req); err != nil {
				http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
				return
			}
			sec, err := svc.Rename(r.Context(), id, req.Name)
			if err != nil {
				api.Error(w, err)
				return
			}
			api.WriteJSON(w, http.StatusOK, sec)
		case http.MethodDelete:
			if err := svc.Delete(r.Context(), id); err != nil {
				api.Error(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewReorderHandler serves POST /api/sections/reorder.
func NewReorderHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req ReorderRequest
		if err := api.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := svc.Reorder(r.Context(), req.IDs); err != nil {
			api.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// NewExportHandler serves GET /api/sections/export?format=bulk|spreadsheet.
func NewExportHandler(svc Service, terms TermLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			api.Error(w, err)
			return
		}
		cal, err := terms.Terms()
		if err != nil {
			api.Error(w, err)
			return
		}
		switch format := r.URL.Query().Get("format"); format {
		case "", "bulk":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = fmt.Fprint(w, export.Bulk(list, cal))
		case "spreadsheet":
			out, err := export.Spreadsheet(list, cal)
			if err != nil {
				api.Error(w, err)
				return
			}
			w.Header().Set("Content-Type", "text/tab-separated-values")
			_, _ = fmt.Fprint(w, out)
		default:
			http.Error(w, "unknown format "+format, http.StatusBadRequest)
		}
	})
}
