// Package sections manages the user's saved sections: named schedule
// requests with their term and session selection.
package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/sectionplanner/core/logger"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/scheduler"
)

// ErrInvalidSection is returned when a draft fails validation.
var ErrInvalidSection = errors.New("invalid section")

// Draft is the user-editable part of a section.
type Draft struct {
	LectureUnits      float64         `json:"lecture_units"`
	LectureDays       []model.Weekday `json:"lecture_days"`
	LabUnits          float64         `json:"lab_units"`
	LabDays           []model.Weekday `json:"lab_days"`
	StartTime         string          `json:"start_time"`
	LabStartTime      string          `json:"lab_start_time,omitempty"`
	SelectedTermID    string          `json:"selected_term_id"`
	SelectedSessionID string          `json:"selected_session_id"`
}

// Validate normalizes the weekday lists and checks units and clock strings.
func (d *Draft) Validate() error {
	if d.LectureUnits < 0 || d.LabUnits < 0 {
		return fmt.Errorf("%w: units must not be negative", ErrInvalidSection)
	}
	var err error
	if d.LectureDays, err = model.NormalizeDays(d.LectureDays); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSection, err)
	}
	if d.LabDays, err = model.NormalizeDays(d.LabDays); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSection, err)
	}
	if _, err := scheduler.ParseClock(d.StartTime); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidSection, err)
	}
	if d.LabStartTime != "" {
		if _, err := scheduler.ParseClock(d.LabStartTime); err != nil {
			return fmt.Errorf("%w: lab start time: %v", ErrInvalidSection, err)
		}
	}
	return nil
}

// Service applies section operations to a Store and publishes the changes.
type Service struct {
	store    Store
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a store and notifier. A nil notifier discards events.
func NewService(store Store, notifier Notifier, log logger.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) publish(ctx context.Context, ev Event) {
	ev.Timestamp = s.now()
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Warnf("section %s notification failed: %v", ev.Type, err)
	}
}

// List returns the sections in display order.
func (s *Service) List(ctx context.Context) ([]model.SavedSection, error) {
	return s.store.List(ctx)
}

// Get returns one section.
func (s *Service) Get(ctx context.Context, id string) (model.SavedSection, error) {
	return s.store.Get(ctx, id)
}

// Save updates the section currentID when it exists, keeping its id and
// name. Otherwise it creates a new section named "Section N" at the top of
// the list.
func (s *Service) Save(ctx context.Context, d Draft, currentID string) (model.SavedSection, error) {
	if err := d.Validate(); err != nil {
		return model.SavedSection{}, err
	}
	sec := model.SavedSection{
		LectureUnits:      d.LectureUnits,
		LectureDays:       d.LectureDays,
		LabUnits:          d.LabUnits,
		LabDays:           d.LabDays,
		StartTime:         d.StartTime,
		LabStartTime:      d.LabStartTime,
		SelectedTermID:    d.SelectedTermID,
		SelectedSessionID: d.SelectedSessionID,
		Timestamp:         s.now(),
	}
	existing, err := s.lookupCurrent(ctx, currentID)
	if err != nil {
		return model.SavedSection{}, err
	}
	if existing != nil {
		sec.ID, sec.Name = existing.ID, existing.Name
	} else {
		all, err := s.store.List(ctx)
		if err != nil {
			return model.SavedSection{}, err
		}
		sec.ID = s.newID()
		sec.Name = fmt.Sprintf("Section %d", len(all)+1)
	}
	if err := s.store.Put(ctx, sec); err != nil {
		return model.SavedSection{}, err
	}
	s.publish(ctx, Event{Type: EventSaved, Section: &sec})
	return sec, nil
}

func (s *Service) lookupCurrent(ctx context.Context, id string) (*model.SavedSection, error) {
	if id == "" {
		return nil, nil
	}
	sec, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrSectionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// Rename changes a section's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (model.SavedSection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavedSection{}, fmt.Errorf("%w: name is required", ErrInvalidSection)
	}
	sec, err := s.store.Get(ctx, id)
	if err != nil {
		return model.SavedSection{}, err
	}
	sec.Name = name
	if err := s.store.Put(ctx, sec); err != nil {
		return model.SavedSection{}, err
	}
	s.publish(ctx, Event{Type: EventRenamed, Section: &sec})
	return sec, nil
}

// Delete removes a section.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, Event{Type: EventDeleted, IDs: []string{id}})
	return nil
}

// Reorder replaces the display order. ids must list every section once.
func (s *Service) Reorder(ctx context.Context, ids []string) error {
	if err := s.store.Reorder(ctx, ids); err != nil {
		return err
	}
	s.publish(ctx, Event{Type: EventReordered, IDs: ids})
	return nil
}

// Clear removes every section.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.publish(ctx, Event{Type: EventCleared})
	return nil
}
