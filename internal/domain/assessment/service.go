package assessment

import (
	"context"
	"log/slog"

	apperrors "github.com/kiranraj/surgesight/pkg/errors"
)

// Service exposes the explainable risk assessment engine.
type Service interface {
	Assess(ctx context.Context, req Request) (RiskAssessment, error)
}

type service struct {
	logger *slog.Logger
}

// NewService wires up the assessment domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "assessment.service")}
}

// Assess runs factor extraction, scoring, confidence estimation and
// alternative ranking over one snapshot. The computation is synchronous and
// side-effect free apart from logging.
func (s *service) Assess(ctx context.Context, req Request) (RiskAssessment, error) {
	if req.Snapshot.HospitalCapacityUtilization < 0 || req.Snapshot.HospitalCapacityUtilization > 1 {
		return RiskAssessment{}, apperrors.Wrap("invalid_input", "hospitalCapacityUtilization must be within [0, 1]", nil)
	}

	reasoning := extractFactors(req.Snapshot)

	score := deriveScore(reasoning)
	if req.CompositeScore != nil {
		score = clamp(*req.CompositeScore, 0, 100)
	}

	level := classify(score)
	result := RiskAssessment{
		CompositeScore: score,
		Level:          level,
		Reasoning:      reasoning,
		Confidence:     estimateConfidence(req.Snapshot, reasoning),
		Recommendation: recommendationFor(level),
		Alternatives:   rankAlternatives(score),
	}

	s.logger.InfoContext(ctx, "assessment computed",
		"score", result.CompositeScore,
		"level", result.Level,
		"factors", len(result.Reasoning),
		"confidence", result.Confidence,
	)
	return result, nil
}

// Baseline is the assessment displayed before the first successful refresh
// cycle: an all-normal snapshot with only the capacity buffer factor.
func Baseline() RiskAssessment {
	snapshot := SignalSnapshot{}
	reasoning := extractFactors(snapshot)
	return RiskAssessment{
		CompositeScore: 0,
		Level:          LevelNormal,
		Reasoning:      reasoning,
		Confidence:     estimateConfidence(snapshot, reasoning),
		Recommendation: recommendationFor(LevelNormal),
		Alternatives:   rankAlternatives(0),
	}
}
