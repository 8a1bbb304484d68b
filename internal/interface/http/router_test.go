package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
	"github.com/kiranraj/surgesight/internal/domain/monitor"
	"github.com/kiranraj/surgesight/internal/infra/config"
	apperrors "github.com/kiranraj/surgesight/pkg/errors"
)

type stubAssessService struct {
	assessFn func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error)
}

func (s *stubAssessService) Assess(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
	if s.assessFn != nil {
		return s.assessFn(ctx, req)
	}
	return assessment.Baseline(), nil
}

type stubCollector struct {
	snapshot assessment.SignalSnapshot
	err      error
}

func (s *stubCollector) Collect(_ context.Context) (assessment.SignalSnapshot, error) {
	if s.err != nil {
		return assessment.SignalSnapshot{}, s.err
	}
	return s.snapshot, nil
}

type stubStore struct {
	latest monitor.CycleRecord
	seeded bool
}

func (s *stubStore) Latest(_ context.Context) (monitor.CycleRecord, bool, error) {
	return s.latest, s.seeded, nil
}

func (s *stubStore) Save(_ context.Context, record monitor.CycleRecord) error {
	s.latest = record
	s.seeded = true
	return nil
}

type stubHistory struct {
	records []monitor.CycleRecord
}

func (h *stubHistory) Insert(_ context.Context, record monitor.CycleRecord) error {
	h.records = append(h.records, record)
	return nil
}

func (h *stubHistory) ListRecent(_ context.Context, limit int) ([]monitor.CycleRecord, error) {
	if limit <= 0 || limit > len(h.records) {
		limit = len(h.records)
	}
	out := make([]monitor.CycleRecord, 0, limit)
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.records[i])
	}
	return out, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouterUnderTest(t *testing.T, assessSvc assessment.Service, collector monitor.Collector) *http.Server {
	t.Helper()

	logger := newTestLogger()
	mon := monitor.NewMonitor(
		monitor.Config{Interval: 30 * time.Second, RequestTimeout: 5 * time.Second, HistoryLimit: 10},
		collector,
		assessment.NewService(logger),
		alerting.NewEngine(logger),
		&stubStore{},
		&stubHistory{},
		logger,
	)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}

	handler := NewHandler(assessSvc, alerting.NewEngine(logger), mon, logger)
	return NewRouter(cfg, handler)
}

func performRequest(server *http.Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, recorder *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload.Error.Code, payload.Error.Message
}

func TestHealthz(t *testing.T) {
	server := newRouterUnderTest(t, &stubAssessService{}, &stubCollector{})

	recorder := performRequest(server, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestEvaluateReturnsAssessmentAndAlerts(t *testing.T) {
	assessSvc := &stubAssessService{
		assessFn: func(_ context.Context, _ assessment.Request) (assessment.RiskAssessment, error) {
			return assessment.RiskAssessment{CompositeScore: 55, Level: assessment.LevelHigh}, nil
		},
	}
	server := newRouterUnderTest(t, assessSvc, &stubCollector{})

	body, err := json.Marshal(assessment.Request{
		Snapshot: assessment.SignalSnapshot{
			UpcomingFestivals: []assessment.FestivalSignal{
				{Name: "Diwali", DaysUntil: 1, RiskLevel: assessment.FestivalRiskHigh, IsTomorrow: true},
			},
		},
	})
	require.NoError(t, err)

	recorder := performRequest(server, http.MethodPost, "/api/v1/assessments", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Assessment assessment.RiskAssessment `json:"assessment"`
		Alerts     []alerting.Alert          `json:"alerts"`
		State      alerting.SurfaceState     `json:"state"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Equal(t, assessment.LevelHigh, payload.Assessment.Level)
	require.Equal(t, alerting.StateActive, payload.State)
	require.NotEmpty(t, payload.Alerts)
}

func TestEvaluateRejectsMalformedJSON(t *testing.T) {
	server := newRouterUnderTest(t, &stubAssessService{}, &stubCollector{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/assessments", []byte("{not json"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	code, _ := decodeErrorBody(t, recorder)
	require.Equal(t, "invalid_request", code)
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	assessSvc := &stubAssessService{
		assessFn: func(_ context.Context, _ assessment.Request) (assessment.RiskAssessment, error) {
			return assessment.RiskAssessment{}, apperrors.Wrap("invalid_input", "utilization out of range", nil)
		},
	}
	server := newRouterUnderTest(t, assessSvc, &stubCollector{})

	body, err := json.Marshal(assessment.Request{})
	require.NoError(t, err)

	recorder := performRequest(server, http.MethodPost, "/api/v1/assessments", body)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	code, _ := decodeErrorBody(t, recorder)
	require.Equal(t, "assessment_failed", code)
}

func TestLatestAssessmentServesBaseline(t *testing.T) {
	server := newRouterUnderTest(t, &stubAssessService{}, &stubCollector{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/assessment", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		CycleID    string                    `json:"cycleId"`
		Assessment assessment.RiskAssessment `json:"assessment"`
		State      alerting.SurfaceState     `json:"state"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Equal(t, "baseline", payload.CycleID)
	require.Equal(t, assessment.LevelNormal, payload.Assessment.Level)
	require.Equal(t, alerting.StateStable, payload.State)
}

func TestRefreshFailureKeepsLastKnownData(t *testing.T) {
	collector := &stubCollector{err: errors.New("environment service unreachable")}
	server := newRouterUnderTest(t, &stubAssessService{}, collector)

	recorder := performRequest(server, http.MethodPost, "/api/v1/refresh", nil)
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	code, message := decodeErrorBody(t, recorder)
	require.Equal(t, "refresh_failed", code)
	require.Equal(t, "unable to refresh, showing last known data", message)
}

func TestRefreshThenLatest(t *testing.T) {
	collector := &stubCollector{
		snapshot: assessment.SignalSnapshot{
			AQI:                         350,
			HospitalCapacityUtilization: 0.9,
			DataSources:                 []string{"environment"},
		},
	}
	server := newRouterUnderTest(t, &stubAssessService{}, collector)

	recorder := performRequest(server, http.MethodPost, "/api/v1/refresh", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/v1/assessment", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		CycleID string `json:"cycleId"`
		Stale   bool   `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.NotEqual(t, "baseline", payload.CycleID)
	require.False(t, payload.Stale)
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	server := newRouterUnderTest(t, &stubAssessService{}, &stubCollector{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/assessments/history?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	code, _ := decodeErrorBody(t, recorder)
	require.Equal(t, "invalid_request", code)
}

func TestAlertsEndpointStateStable(t *testing.T) {
	server := newRouterUnderTest(t, &stubAssessService{}, &stubCollector{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/alerts", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		State  alerting.SurfaceState `json:"state"`
		Alerts []alerting.Alert      `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Equal(t, alerting.StateStable, payload.State)
	require.Empty(t, payload.Alerts)
}
