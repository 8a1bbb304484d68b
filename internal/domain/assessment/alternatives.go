package assessment

// alternativeTemplate describes one candidate strategy before scoring.
type alternativeTemplate struct {
	option string
	score  float64
	reason string
}

// ladders is the strategy table keyed by risk level. Levels above the high
// band share the emergency ladder; everything else shares the monitoring
// ladder. New bands only need a new table entry.
var ladders = map[RiskLevel][]alternativeTemplate{
	LevelCritical: {
		{option: "Full Emergency Protocol", score: 95, reason: "Risk level demands maximum readiness across staffing, beds and supplies."},
		{option: "Partial Activation", score: 70, reason: "Insufficient for the projected surge; leaves overflow capacity unprepared."},
		{option: "Wait and Monitor", score: 30, reason: "Too risky at this score; reaction time would be lost while the surge builds."},
	},
	LevelHigh: {
		{option: "Enhanced Monitoring", score: 85, reason: "Keeps response lead time short without committing full emergency resources."},
		{option: "Standard Operations", score: 60, reason: "Lower cost but accepts a higher chance of being caught understaffed."},
	},
	LevelModerate: {
		{option: "Enhanced Monitoring", score: 85, reason: "Keeps response lead time short without committing full emergency resources."},
		{option: "Standard Operations", score: 60, reason: "Lower cost but accepts a higher chance of being caught understaffed."},
	},
	LevelNormal: {
		{option: "Enhanced Monitoring", score: 85, reason: "Keeps response lead time short without committing full emergency resources."},
		{option: "Standard Operations", score: 60, reason: "Lower cost but accepts a higher chance of being caught understaffed."},
	},
}

// rankAlternatives produces the scored response strategies for a composite
// score, descending by score, with exactly the first entry recommended.
func rankAlternatives(score float64) []AlternativeOption {
	templates := ladders[classify(score)]
	options := make([]AlternativeOption, 0, len(templates))
	for i, tmpl := range templates {
		options = append(options, AlternativeOption{
			Option:        tmpl.option,
			Score:         tmpl.score,
			Reason:        tmpl.reason,
			IsRecommended: i == 0,
		})
	}
	return options
}
