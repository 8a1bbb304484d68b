package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
)

type stubCollector struct {
	snapshot assessment.SignalSnapshot
	err      error
	calls    int
}

func (s *stubCollector) Collect(_ context.Context) (assessment.SignalSnapshot, error) {
	s.calls++
	if s.err != nil {
		return assessment.SignalSnapshot{}, s.err
	}
	return s.snapshot, nil
}

type stubStore struct {
	mu     sync.Mutex
	latest CycleRecord
	seeded bool
	saveFn func(CycleRecord) error
}

func (s *stubStore) Latest(_ context.Context) (CycleRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.seeded, nil
}

func (s *stubStore) Save(_ context.Context, record CycleRecord) error {
	if s.saveFn != nil {
		if err := s.saveFn(record); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = record
	s.seeded = true
	return nil
}

type stubHistory struct {
	mu      sync.Mutex
	records []CycleRecord
	err     error
}

func (h *stubHistory) Insert(_ context.Context, record CycleRecord) error {
	if h.err != nil {
		return h.err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *stubHistory) ListRecent(_ context.Context, limit int) ([]CycleRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > len(h.records) {
		limit = len(h.records)
	}
	out := make([]CycleRecord, 0, limit)
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.records[i])
	}
	return out, nil
}

func newTestMonitor(collector Collector, store Store, history History) *Monitor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMonitor(
		Config{Interval: 30 * time.Second, RequestTimeout: 5 * time.Second, HistoryLimit: 10},
		collector,
		assessment.NewService(logger),
		alerting.NewEngine(logger),
		store,
		history,
		logger,
	)
}

func TestLatestBeforeFirstCycleIsBaseline(t *testing.T) {
	mon := newTestMonitor(&stubCollector{}, &stubStore{}, &stubHistory{})

	record, _, err := mon.Latest(context.Background())
	require.NoError(t, err)

	require.Equal(t, "baseline", record.ID)
	require.Equal(t, assessment.LevelNormal, record.Assessment.Level)
	require.Empty(t, record.Alerts)
	require.Equal(t, alerting.StateStable, record.State)
}

func TestRefreshNowStoresCycle(t *testing.T) {
	collector := &stubCollector{
		snapshot: assessment.SignalSnapshot{
			AQI:                         350,
			EpidemicCaseCount:           200,
			ActiveOutbreaks:             []string{"dengue"},
			HospitalCapacityUtilization: 0.9,
			UpcomingFestivals: []assessment.FestivalSignal{
				{Name: "Diwali", DaysUntil: 1, ExpectedSurgeMultiplier: 2.0, RiskLevel: assessment.FestivalRiskHigh, IsTomorrow: true},
			},
			DataSources: []string{"environment", "festivals", "epidemics", "staffing"},
		},
	}
	store := &stubStore{}
	history := &stubHistory{}
	mon := newTestMonitor(collector, store, history)

	record, err := mon.RefreshNow(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, record.ID)
	require.Equal(t, assessment.LevelCritical, record.Assessment.Level)
	require.Equal(t, alerting.StateActive, record.State)

	stored, ok, err := store.Latest(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record.ID, stored.ID)

	recent, err := mon.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, record.ID, recent[0].ID)
}

func TestRefreshFailureRetainsLastKnownGood(t *testing.T) {
	collector := &stubCollector{snapshot: assessment.SignalSnapshot{AQI: 120, HospitalCapacityUtilization: 0.5}}
	store := &stubStore{}
	mon := newTestMonitor(collector, store, &stubHistory{})

	good, err := mon.RefreshNow(context.Background())
	require.NoError(t, err)

	collector.err = errors.New("upstream timeout")
	_, err = mon.RefreshNow(context.Background())
	require.Error(t, err)

	record, _, err := mon.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, good.ID, record.ID)
}

func TestRefreshSurvivesHistoryFailure(t *testing.T) {
	collector := &stubCollector{snapshot: assessment.SignalSnapshot{HospitalCapacityUtilization: 0.4}}
	mon := newTestMonitor(collector, &stubStore{}, &stubHistory{err: errors.New("db down")})

	_, err := mon.RefreshNow(context.Background())
	require.NoError(t, err)
}

func TestLatestReportsStaleness(t *testing.T) {
	collector := &stubCollector{snapshot: assessment.SignalSnapshot{HospitalCapacityUtilization: 0.4}}
	store := &stubStore{}
	mon := newTestMonitor(collector, store, &stubHistory{})

	_, err := mon.RefreshNow(context.Background())
	require.NoError(t, err)

	_, stale, err := mon.Latest(context.Background())
	require.NoError(t, err)
	require.False(t, stale)

	mon.now = func() time.Time { return time.Now().Add(5 * time.Minute) }
	_, stale, err = mon.Latest(context.Background())
	require.NoError(t, err)
	require.True(t, stale)
}
