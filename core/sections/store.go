package sections

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kilianp07/sectionplanner/core/model"
)

var (
	// ErrSectionNotFound is returned for an unknown section id.
	ErrSectionNotFound = errors.New("section not found")
	// ErrInvalidOrder is returned when a reorder list is not a permutation
	// of the stored ids.
	ErrInvalidOrder = errors.New("invalid section order")
)

// Store persists saved sections in display order.
type Store interface {
	List(ctx context.Context) ([]model.SavedSection, error)
	Get(ctx context.Context, id string) (model.SavedSection, error)
	// Put replaces an existing section in place or inserts a new one first.
	Put(ctx context.Context, s model.SavedSection) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps sections in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	list []model.SavedSection
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) indexOf(id string) int {
	for i, s := range m.list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) List(context.Context) ([]model.SavedSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.SavedSection, len(m.list))
	copy(out, m.list)
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (model.SavedSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.list[i], nil
	}
	return model.SavedSection{}, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
}

func (m *MemoryStore) Put(_ context.Context, s model.SavedSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(s.ID); i >= 0 {
		m.list[i] = s
		return nil
	}
	m.list = append([]model.SavedSection{s}, m.list...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	m.list = append(m.list[:i], m.list[i+1:]...)
	return nil
}

func (m *MemoryStore) Reorder(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := make(map[string]model.SavedSection, len(m.list))
	for _, s := range m.list {
		byID[s.ID] = s
	}
	next, err := permute(byID, ids)
	if err != nil {
		return err
	}
	m.list = next
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.list = nil
	m.mu.Unlock()
	return nil
}

// permute orders the sections of byID according to ids. Every stored id must
// appear exactly once.
func permute(byID map[string]model.SavedSection, ids []string) ([]model.SavedSection, error) {
	if len(ids) != len(byID) {
		return nil, fmt.Errorf("%w: got %d ids for %d sections", ErrInvalidOrder, len(ids), len(byID))
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]model.SavedSection, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown id %s", ErrInvalidOrder, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidOrder, id)
		}
		seen[id] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// Permute is exported for stores that load all rows before reordering.
func Permute(sections []model.SavedSection, ids []string) ([]model.SavedSection, error) {
	byID := make(map[string]model.SavedSection, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
	}
	return permute(byID, ids)
}
