package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
	apperrors "github.com/kiranraj/surgesight/pkg/errors"
	"github.com/kiranraj/surgesight/pkg/metrics"
	"github.com/kiranraj/surgesight/pkg/util"
)

// Config tunes the refresh scheduler.
type Config struct {
	Interval       time.Duration
	RequestTimeout time.Duration
	HistoryLimit   int
}

// Monitor owns the periodic retrieve-then-compute-then-store cycle. Each
// cycle is self-contained; a failed retrieval leaves the previous cycle in
// place so the dashboard never flickers back to an empty state.
type Monitor struct {
	cfg       Config
	collector Collector
	assessor  assessment.Service
	alerts    *alerting.Engine
	store     Store
	history   History
	logger    *slog.Logger
	now       func() time.Time
}

// NewMonitor wires the refresh scheduler.
func NewMonitor(cfg Config, collector Collector, assessor assessment.Service, alerts *alerting.Engine, store Store, history History, logger *slog.Logger) *Monitor {
	return &Monitor{
		cfg:       cfg,
		collector: collector,
		assessor:  assessor,
		alerts:    alerts,
		store:     store,
		history:   history,
		logger:    logger.With("component", "monitor"),
		now:       util.NowUTC,
	}
}

// Run seeds the baseline record and drives the refresh loop until the
// context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.seedBaseline(ctx); err != nil {
		return err
	}

	if _, err := m.RefreshNow(ctx); err != nil {
		m.logger.Warn("initial refresh failed, baseline retained", "error", err)
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor shutting down")
			return nil
		case <-ticker.C:
			if _, err := m.RefreshNow(ctx); err != nil {
				m.logger.Warn("refresh failed, last known good retained", "error", err)
			}
		}
	}
}

// RefreshNow executes a single refresh cycle. It backs both the ticker and
// the manual retry action exposed over HTTP.
func (m *Monitor) RefreshNow(ctx context.Context) (CycleRecord, error) {
	cycleCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	var stats metrics.CycleStats

	collectStart := m.now()
	snapshot, err := m.collector.Collect(cycleCtx)
	if err != nil {
		return CycleRecord{}, apperrors.Wrap("refresh_failed", "snapshot retrieval failed", err)
	}
	stats.CollectMillis = m.now().Sub(collectStart).Milliseconds()

	computeStart := m.now()
	result, err := m.assessor.Assess(cycleCtx, assessment.Request{Snapshot: snapshot})
	if err != nil {
		return CycleRecord{}, apperrors.Wrap("refresh_failed", "assessment failed", err)
	}
	alerts := m.alerts.Derive(result.Level, snapshot)
	stats.ComputeMillis = m.now().Sub(computeStart).Milliseconds()
	stats.FactorCount = len(result.Reasoning)
	stats.AlertCount = len(alerts)

	record := CycleRecord{
		ID:          uuid.NewString(),
		GeneratedAt: m.now().UTC(),
		Snapshot:    snapshot,
		Assessment:  result,
		Alerts:      alerts,
		State:       alerting.StateOf(alerts),
	}

	if err := m.store.Save(cycleCtx, record); err != nil {
		return CycleRecord{}, apperrors.Wrap("refresh_failed", "store cycle failed", err)
	}
	if err := m.history.Insert(cycleCtx, record); err != nil {
		// History is best effort; the live surface already has the cycle.
		m.logger.Warn("history insert failed", "cycle", record.ID, "error", err)
	}

	m.logger.Info("refresh cycle completed",
		"cycle", record.ID,
		"level", record.Assessment.Level,
		"state", record.State,
		"collect_ms", stats.CollectMillis,
		"compute_ms", stats.ComputeMillis,
		"factors", stats.FactorCount,
		"alerts", stats.AlertCount,
	)
	return record, nil
}

// Latest returns the last known good cycle and whether it is stale, meaning
// older than two refresh intervals.
func (m *Monitor) Latest(ctx context.Context) (CycleRecord, bool, error) {
	record, ok, err := m.store.Latest(ctx)
	if err != nil {
		return CycleRecord{}, false, apperrors.Wrap("store_error", "read latest cycle failed", err)
	}
	if !ok {
		record = m.baselineRecord()
	}
	stale := m.now().UTC().Sub(record.GeneratedAt) > 2*m.cfg.Interval
	return record, stale, nil
}

// History lists recent cycles, newest first.
func (m *Monitor) History(ctx context.Context, limit int) ([]CycleRecord, error) {
	if limit <= 0 || limit > m.cfg.HistoryLimit {
		limit = m.cfg.HistoryLimit
	}
	records, err := m.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "list history failed", err)
	}
	return records, nil
}

func (m *Monitor) seedBaseline(ctx context.Context) error {
	if _, ok, err := m.store.Latest(ctx); err != nil {
		return apperrors.Wrap("store_error", "probe latest cycle failed", err)
	} else if ok {
		return nil
	}
	if err := m.store.Save(ctx, m.baselineRecord()); err != nil {
		return apperrors.Wrap("store_error", "seed baseline failed", err)
	}
	return nil
}

func (m *Monitor) baselineRecord() CycleRecord {
	return CycleRecord{
		ID:          "baseline",
		GeneratedAt: m.now().UTC(),
		Assessment:  assessment.Baseline(),
		Alerts:      []alerting.Alert{},
		State:       alerting.StateStable,
	}
}
