package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBandsPartition(t *testing.T) {
	cases := []struct {
		score float64
		level RiskLevel
	}{
		{0, LevelNormal},
		{20, LevelNormal},
		{20.01, LevelModerate},
		{40, LevelModerate},
		{40.01, LevelHigh},
		{70, LevelHigh},
		{70.01, LevelCritical},
		{100, LevelCritical},
	}
	for _, tc := range cases {
		require.Equal(t, tc.level, classify(tc.score), "score %.2f", tc.score)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for score := 0.0; score <= 100; score += 0.5 {
		level := classify(score)
		require.Contains(t, []RiskLevel{LevelNormal, LevelModerate, LevelHigh, LevelCritical}, level)
	}
}

func TestEstimateConfidenceBounds(t *testing.T) {
	require.Equal(t, 85.0, estimateConfidence(SignalSnapshot{}, nil))

	withProvenance := SignalSnapshot{DataSources: []string{"environment", "staffing"}}
	require.InDelta(t, 88.75, estimateConfidence(withProvenance, nil), 0.001)

	fourFactors := make([]ReasoningStep, 4)
	require.InDelta(t, 96.75, estimateConfidence(withProvenance, fourFactors), 0.001)

	// Ceiling holds no matter how many steps are handed in.
	manySteps := make([]ReasoningStep, 20)
	require.Equal(t, 98.0, estimateConfidence(withProvenance, manySteps))
}

func TestRankAlternativesInvariants(t *testing.T) {
	for _, score := range []float64{0, 15, 45, 70, 70.5, 95} {
		options := rankAlternatives(score)
		require.NotEmpty(t, options, "score %.1f", score)

		recommended := 0
		for i, opt := range options {
			if opt.IsRecommended {
				recommended++
				require.Equal(t, 0, i, "recommended option must come first")
			}
			if i > 0 {
				require.LessOrEqual(t, opt.Score, options[i-1].Score)
			}
			require.LessOrEqual(t, opt.Score, options[0].Score)
		}
		require.Equal(t, 1, recommended)
	}
}

func TestRankAlternativesThreshold(t *testing.T) {
	atThreshold := rankAlternatives(70)
	require.Equal(t, "Enhanced Monitoring", atThreshold[0].Option)

	aboveThreshold := rankAlternatives(70.01)
	require.Equal(t, "Full Emergency Protocol", aboveThreshold[0].Option)
}
