package monitor

import (
	"context"
	"time"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
)

// CycleRecord is the whole-object artifact of one refresh cycle. The latest
// record is replaced atomically; fields are never mutated individually.
type CycleRecord struct {
	ID          string                    `json:"id"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Snapshot    assessment.SignalSnapshot `json:"snapshot"`
	Assessment  assessment.RiskAssessment `json:"assessment"`
	Alerts      []alerting.Alert          `json:"alerts"`
	State       alerting.SurfaceState     `json:"state"`
}

// Collector retrieves a fresh snapshot from the external collaborators.
// This is the only blocking boundary of a refresh cycle.
type Collector interface {
	Collect(ctx context.Context) (assessment.SignalSnapshot, error)
}

// Store holds the single last-known-good cycle read by presentation.
type Store interface {
	Latest(ctx context.Context) (CycleRecord, bool, error)
	Save(ctx context.Context, record CycleRecord) error
}

// History records completed cycles for the dashboard trend view.
type History interface {
	Insert(ctx context.Context, record CycleRecord) error
	ListRecent(ctx context.Context, limit int) ([]CycleRecord, error)
}
