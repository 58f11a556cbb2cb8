// Package cache stores serialized schedules keyed by their inputs.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/kilianp07/sectionplanner/core/model"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KeyInput lists everything a generated schedule depends on. The term and
// session records are hashed by content, so an edited calendar or rule file
// yields new keys even in a shared cache.
type KeyInput struct {
	Term         model.AcademicTerm     `json:"t"`
	Session      model.TermSession      `json:"s"`
	Method       model.AttendanceMethod `json:"m"`
	StartTime    string                 `json:"st"`
	LabStartTime string                 `json:"lst"`
	Request      model.ScheduleRequest  `json:"r"`
}

// Key hashes in into a short cache key.
func Key(in KeyInput) string {
	b, _ := json.Marshal(in)
	return "schedule:" + strconv.FormatUint(xxhash.Sum64(b), 16)
}

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Cache bounded to a maximum number of entries.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	max     int
	now     func() time.Time
}

// NewMemory returns a Memory cache holding at most max entries (0 = 1024).
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 1024
	}
	return &Memory{entries: make(map[string]entry), max: max, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value. A zero ttl never expires.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.max {
		m.evict()
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// evict drops expired entries, or an arbitrary one when none has expired.
func (m *Memory) evict() {
	now := m.now()
	for k, e := range m.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(m.entries, k)
		}
	}
	if len(m.entries) < m.max {
		return
	}
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
