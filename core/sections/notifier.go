package sections

import (
	"context"
	"time"

	"github.com/kilianp07/sectionplanner/core/model"
)

// EventType names a change to the saved-section list.
type EventType string

const (
	EventSaved     EventType = "saved"
	EventRenamed   EventType = "renamed"
	EventDeleted   EventType = "deleted"
	EventReordered EventType = "reordered"
	EventCleared   EventType = "cleared"
)

// Event describes one change. Section is set for saved and renamed events,
// IDs for deleted and reordered ones.
type Event struct {
	Type      EventType           `json:"type"`
	Section   *model.SavedSection `json:"section,omitempty"`
	IDs       []string            `json:"ids,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// Notifier receives section change events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NopNotifier discards events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) error { return nil }
