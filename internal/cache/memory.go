package cache

import (
	"context"
	"sync"
	"time"

	"github.com/giza-dash/pkg/models"
)

type memoryEntry struct {
	value     interface{}
	fetchedAt time.Time
	ttl       time.Duration
}

func (e *memoryEntry) expired(now time.Time) bool {
	return now.Sub(e.fetchedAt) > e.ttl
}

// MemoryStore is the default in-process Store. Overlapping writers are not
// coordinated; the last completed write wins the slot.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) get(key string) (interface{}, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || entry.expired(s.now()) {
		return nil, false
	}
	return entry.value, true
}

func (s *MemoryStore) set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = &memoryEntry{value: value, fetchedAt: s.now(), ttl: ttl}
	s.mu.Unlock()
}

// GetMetrics returns a cached metrics snapshot, if present and fresh
func (s *MemoryStore) GetMetrics(_ context.Context, key string) (*models.TokenMetrics, bool, error) {
	value, ok := s.get(key)
	if !ok {
		return nil, false, nil
	}
	m, ok := value.(*models.TokenMetrics)
	if !ok {
		return nil, false, nil
	}
	return m, true, nil
}

// SetMetrics stores a metrics snapshot with its TTL
func (s *MemoryStore) SetMetrics(_ context.Context, key string, m *models.TokenMetrics, ttl time.Duration) error {
	s.set(key, m, ttl)
	return nil
}

// GetHistory returns a cached price series, if present and fresh
func (s *MemoryStore) GetHistory(_ context.Context, key string) ([]models.PricePoint, bool, error) {
	value, ok := s.get(key)
	if !ok {
		return nil, false, nil
	}
	points, ok := value.([]models.PricePoint)
	if !ok {
		return nil, false, nil
	}
	return points, true, nil
}

// SetHistory stores a price series with its TTL
func (s *MemoryStore) SetHistory(_ context.Context, key string, points []models.PricePoint, ttl time.Duration) error {
	s.set(key, points, ttl)
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
