package assessrepo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/monitor"
)

// PostgresRepository implements monitor.History using pgx. Snapshot,
// assessment and alerts are stored as JSONB documents next to the indexed
// columns used by the trend view.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one completed cycle.
func (r *PostgresRepository) Insert(ctx context.Context, record monitor.CycleRecord) error {
	snapshot, err := json.Marshal(record.Snapshot)
	if err != nil {
		return err
	}
	result, err := json.Marshal(record.Assessment)
	if err != nil {
		return err
	}
	alerts, err := json.Marshal(record.Alerts)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO assessment_cycles (id, generated_at, composite_score, risk_level, surface_state, snapshot, assessment, alerts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, record.ID, record.GeneratedAt, record.Assessment.CompositeScore, string(record.Assessment.Level), string(record.State), snapshot, result, alerts)
	return err
}

// ListRecent returns up to limit cycles, newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]monitor.CycleRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, generated_at, surface_state, snapshot, assessment, alerts
		FROM assessment_cycles
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]monitor.CycleRecord, 0, limit)
	for rows.Next() {
		var (
			record   monitor.CycleRecord
			state    string
			snapshot []byte
			result   []byte
			alerts   []byte
		)
		if err := rows.Scan(&record.ID, &record.GeneratedAt, &state, &snapshot, &result, &alerts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapshot, &record.Snapshot); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(result, &record.Assessment); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(alerts, &record.Alerts); err != nil {
			return nil, err
		}
		record.State = alerting.SurfaceState(state)
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ monitor.History = (*PostgresRepository)(nil)
