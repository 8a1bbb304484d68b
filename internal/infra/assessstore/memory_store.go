package assessstore

import (
	"context"
	"sync"

	"github.com/kiranraj/surgesight/internal/domain/monitor"
)

// MemoryStore holds the last known good cycle in process memory. It is the
// default backing for single-instance deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	latest monitor.CycleRecord
	seeded bool
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Latest implements monitor.Store.
func (s *MemoryStore) Latest(_ context.Context) (monitor.CycleRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.seeded {
		return monitor.CycleRecord{}, false, nil
	}
	return s.latest, true, nil
}

// Save replaces the stored cycle wholesale.
func (s *MemoryStore) Save(_ context.Context, record monitor.CycleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = record
	s.seeded = true
	return nil
}

var _ monitor.Store = (*MemoryStore)(nil)
