package assessment

const (
	criticalThreshold = 70.0
	highThreshold     = 40.0
	moderateThreshold = 20.0

	confidenceBase    = 85.0
	confidenceCeiling = 98.0
	// Bonus granted when the snapshot declares where its readings came from.
	dataQualityBonus = (95.0 - 80.0) / 4.0
	perFactorBonus   = 2.0
)

// classify maps a composite score onto the four risk bands. The bands are
// half-open so every score lands in exactly one of them.
func classify(score float64) RiskLevel {
	switch {
	case score > criticalThreshold:
		return LevelCritical
	case score > highThreshold:
		return LevelHigh
	case score > moderateThreshold:
		return LevelModerate
	default:
		return LevelNormal
	}
}

// recommendationFor selects the advisory text for a level. The text depends
// on the level alone, not on which factors produced it.
func recommendationFor(level RiskLevel) string {
	switch level {
	case LevelCritical:
		return "CRITICAL: Activate emergency surge protocol. Increase ER staff by 40%, prepare overflow beds, alert all departments."
	case LevelHigh:
		return "HIGH ALERT: Increase staffing by 25%, ensure supply buffers, activate advisory system."
	case LevelModerate:
		return "MODERATE: Monitor closely, prepare contingency plans, maintain current staffing."
	default:
		return "NORMAL: Continue standard operations, routine monitoring."
	}
}

// estimateConfidence derives the confidence percentage from factor count and
// declared data provenance. It never drops below the base and never exceeds
// the ceiling, even for degenerate snapshots.
func estimateConfidence(snapshot SignalSnapshot, reasoning []ReasoningStep) float64 {
	confidence := confidenceBase
	if len(snapshot.DataSources) > 0 {
		confidence += dataQualityBonus
	}
	confidence += float64(len(reasoning)) * perFactorBonus
	return clamp(confidence, 0, confidenceCeiling)
}
