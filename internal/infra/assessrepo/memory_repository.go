package assessrepo

import (
	"context"
	"sync"

	"github.com/kiranraj/surgesight/internal/domain/monitor"
)

const memoryCap = 1000

// MemoryRepository keeps recent cycles in process memory for tests and
// deployments without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []monitor.CycleRecord
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements monitor.History.
func (r *MemoryRepository) Insert(_ context.Context, record monitor.CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	if len(r.records) > memoryCap {
		r.records = r.records[len(r.records)-memoryCap:]
	}
	return nil
}

// ListRecent returns up to limit cycles, newest first.
func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]monitor.CycleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]monitor.CycleRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

var _ monitor.History = (*MemoryRepository)(nil)
