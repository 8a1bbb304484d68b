package alerting

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kiranraj/surgesight/internal/domain/assessment"
	"github.com/kiranraj/surgesight/pkg/util"
)

// Engine evaluates the fixed alert rules against a snapshot plus the
// composed risk level. Rules are independent and additive; no rule ever
// suppresses another and nothing is remembered between cycles.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine wires up the alert rule engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger.With("component", "alerting.engine"),
		now:    util.NowUTC,
	}
}

// Derive produces the alert list for one cycle. Identical inputs under a
// fixed clock yield an identical list.
func (e *Engine) Derive(level assessment.RiskLevel, snapshot assessment.SignalSnapshot) []Alert {
	now := e.now().UTC()
	alerts := make([]Alert, 0, 2+len(snapshot.SupplyStates))

	if level == assessment.LevelHigh || level == assessment.LevelCritical {
		alerts = append(alerts, e.surgeAlert(level, now))
	}

	if festival, ok := snapshot.NearestFestival(); ok {
		if festival.RiskLevel == assessment.FestivalRiskHigh || festival.RiskLevel == assessment.FestivalRiskCritical {
			alerts = append(alerts, e.festivalAlert(festival, now))
		}
	}

	for _, supply := range snapshot.SupplyStates {
		if supply.Status == assessment.SupplyLow || supply.Status == assessment.SupplyCritical {
			alerts = append(alerts, e.supplyAlert(supply, now))
		}
	}

	e.logger.Debug("alert rules evaluated", "level", level, "alerts", len(alerts), "state", StateOf(alerts))
	return alerts
}

func (e *Engine) surgeAlert(level assessment.RiskLevel, now time.Time) Alert {
	severity := SeverityHigh
	if level == assessment.LevelCritical {
		severity = SeverityCritical
	}
	return Alert{
		ID:             "surge-protocol",
		Type:           TypeSurgeProtocol,
		Severity:       severity,
		Title:          "Surge Protocol Activation Required",
		Message:        fmt.Sprintf("Composite surge risk is %s. Current staffing and bed plans will not absorb the projected inflow.", level),
		Recommendation: "Activate the surge protocol and notify all department heads immediately.",
		Timestamp:      now,
	}
}

func (e *Engine) festivalAlert(festival assessment.FestivalSignal, now time.Time) Alert {
	message := fmt.Sprintf("%s is ongoing risk watch: expected %.1fx patient inflow. Monitor admissions and keep contingency staff on call.", festival.Name, festival.ExpectedSurgeMultiplier)
	if festival.IsTomorrow {
		message = fmt.Sprintf("%s begins tomorrow: expect %.1fx patient inflow. Pre-position staff and supplies tonight.", festival.Name, festival.ExpectedSurgeMultiplier)
	}
	return Alert{
		ID:             "festival-" + slug(festival.Name),
		Type:           TypeFestivalSurge,
		Severity:       SeverityHigh,
		Title:          fmt.Sprintf("%s Surge Window", festival.Name),
		Message:        message,
		Recommendation: "Scale ER and affected department rosters ahead of the festival window.",
		Timestamp:      now,
	}
}

func (e *Engine) supplyAlert(supply assessment.SupplyState, now time.Time) Alert {
	severity := SeverityMedium
	if supply.Status == assessment.SupplyCritical {
		severity = SeverityCritical
	}
	return Alert{
		ID:             "supply-" + slug(supply.Name),
		Type:           TypeSupplyRestock,
		Severity:       severity,
		Title:          fmt.Sprintf("Restock %s", supply.Name),
		Message:        fmt.Sprintf("%s stock is %s (%d available of %d required).", supply.Name, strings.ToLower(string(supply.Status)), supply.Available, supply.Required),
		Recommendation: fmt.Sprintf("Raise a replenishment order for %s before the next surge window.", supply.Name),
		Timestamp:      now,
	}
}

func slug(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, cleaned)
	for strings.Contains(cleaned, "--") {
		cleaned = strings.ReplaceAll(cleaned, "--", "-")
	}
	return strings.Trim(cleaned, "-")
}
