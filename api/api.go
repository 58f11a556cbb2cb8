// Package api holds the HTTP helpers shared by the schedule and section
// handlers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/catalog"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/scheduler"
	"github.com/kilianp07/sectionplanner/core/sections"
)

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Status maps a domain error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, calendar.ErrTermNotFound),
		errors.Is(err, calendar.ErrSessionNotFound),
		errors.Is(err, sections.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduler.ErrInvalidClock),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrUnknownWeekday),
		errors.Is(err, sections.ErrInvalidSection),
		errors.Is(err, sections.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status Status assigns to it.
func Error(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}

// Auth rejects requests without "Authorization: Bearer <token>" when token
// is non-empty.
func Auth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit answers 429 once the limiter runs out of tokens. A nil limiter
// disables limiting.
func RateLimit(l *rate.Limiter, next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewLimiter returns a limiter allowing perSec requests per second with the
// given burst, or nil when perSec is not positive.
func NewLimiter(perSec float64, burst int) *rate.Limiter {
	if perSec <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSec), burst)
}
