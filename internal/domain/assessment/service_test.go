package assessment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAssessSevereAirQuality(t *testing.T) {
	svc := newTestService()

	result, err := svc.Assess(context.Background(), Request{
		Snapshot: SignalSnapshot{
			AQI:                         350,
			HospitalCapacityUtilization: 0.78,
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Reasoning, 2)
	require.Equal(t, "Air Quality Index", result.Reasoning[0].Factor)
	require.Equal(t, ImpactNegative, result.Reasoning[0].Impact)
	require.Equal(t, 40.0, result.Reasoning[0].Weight)
	require.Equal(t, "Current Hospital Capacity", result.Reasoning[1].Factor)
	require.Equal(t, ImpactPositive, result.Reasoning[1].Impact)
	require.Equal(t, 15.0, result.Reasoning[1].Weight)
	require.Contains(t, result.Reasoning[1].Explanation, "22%")
}

func TestAssessUpstreamScoreCritical(t *testing.T) {
	svc := newTestService()
	score := 75.0

	result, err := svc.Assess(context.Background(), Request{
		Snapshot:       SignalSnapshot{HospitalCapacityUtilization: 0.5},
		CompositeScore: &score,
	})
	require.NoError(t, err)

	require.Equal(t, 75.0, result.CompositeScore)
	require.Equal(t, LevelCritical, result.Level)
	require.Len(t, result.Alternatives, 3)
	require.Equal(t, "Full Emergency Protocol", result.Alternatives[0].Option)
	require.Equal(t, 95.0, result.Alternatives[0].Score)
	require.True(t, result.Alternatives[0].IsRecommended)
	require.Equal(t, "Partial Activation", result.Alternatives[1].Option)
	require.Equal(t, 70.0, result.Alternatives[1].Score)
	require.Equal(t, "Wait and Monitor", result.Alternatives[2].Option)
	require.Equal(t, 30.0, result.Alternatives[2].Score)
}

func TestAssessUpstreamScoreHigh(t *testing.T) {
	svc := newTestService()
	score := 55.0

	result, err := svc.Assess(context.Background(), Request{
		Snapshot:       SignalSnapshot{HospitalCapacityUtilization: 0.5},
		CompositeScore: &score,
	})
	require.NoError(t, err)

	require.Equal(t, LevelHigh, result.Level)
	require.Len(t, result.Alternatives, 2)
	require.Equal(t, "Enhanced Monitoring", result.Alternatives[0].Option)
	require.Equal(t, 85.0, result.Alternatives[0].Score)
	require.True(t, result.Alternatives[0].IsRecommended)
	require.Equal(t, "Standard Operations", result.Alternatives[1].Option)
	require.Equal(t, 60.0, result.Alternatives[1].Score)
	require.False(t, result.Alternatives[1].IsRecommended)
}

func TestAssessRecommendationMatchesLevel(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		score  float64
		prefix string
	}{
		{score: 85, prefix: "CRITICAL:"},
		{score: 55, prefix: "HIGH ALERT:"},
		{score: 30, prefix: "MODERATE:"},
		{score: 10, prefix: "NORMAL:"},
	}
	for _, tc := range cases {
		score := tc.score
		result, err := svc.Assess(context.Background(), Request{
			Snapshot:       SignalSnapshot{HospitalCapacityUtilization: 0.6},
			CompositeScore: &score,
		})
		require.NoError(t, err)
		require.Contains(t, result.Recommendation, tc.prefix)
	}
}

func TestAssessCapacityFactorAlwaysPresent(t *testing.T) {
	svc := newTestService()

	result, err := svc.Assess(context.Background(), Request{Snapshot: SignalSnapshot{}})
	require.NoError(t, err)

	require.NotEmpty(t, result.Reasoning)
	last := result.Reasoning[len(result.Reasoning)-1]
	require.Equal(t, "Current Hospital Capacity", last.Factor)
	require.Equal(t, ImpactPositive, last.Impact)
}

func TestAssessInvalidUtilization(t *testing.T) {
	svc := newTestService()

	_, err := svc.Assess(context.Background(), Request{
		Snapshot: SignalSnapshot{HospitalCapacityUtilization: 1.4},
	})
	require.Error(t, err)
}

func TestBaselineIsAllNormal(t *testing.T) {
	baseline := Baseline()

	require.Equal(t, 0.0, baseline.CompositeScore)
	require.Equal(t, LevelNormal, baseline.Level)
	require.NotEmpty(t, baseline.Reasoning)
	require.Equal(t, "Current Hospital Capacity", baseline.Reasoning[0].Factor)
	require.Contains(t, baseline.Recommendation, "NORMAL:")
	require.True(t, baseline.Alternatives[0].IsRecommended)
}
