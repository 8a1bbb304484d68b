package alerting

import "time"

// Severity tags an alert for triage on the emergency surface.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Alert types emitted by the rule engine.
const (
	TypeSurgeProtocol = "surge_protocol"
	TypeFestivalSurge = "festival_surge"
	TypeSupplyRestock = "supply_restock"
)

// Surface state of the alert list as a whole. Stable means no rule fired
// this cycle; it is a binary state, not a severity.
type SurfaceState string

const (
	StateStable SurfaceState = "STABLE"
	StateActive SurfaceState = "ACTIVE"
)

// Alert is one severity-tagged notification derived from rule evaluation.
// Alerts are regenerated from scratch every cycle and never carried forward,
// so IDs are deterministic per rule and subject rather than random.
type Alert struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       Severity  `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

// StateOf reports the surface state for an alert list.
func StateOf(alerts []Alert) SurfaceState {
	if len(alerts) == 0 {
		return StateStable
	}
	return StateActive
}
