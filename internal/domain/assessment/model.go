package assessment

// RiskLevel classifies the composite score into the four dashboard bands.
type RiskLevel string

const (
	LevelNormal   RiskLevel = "NORMAL"
	LevelModerate RiskLevel = "MODERATE"
	LevelHigh     RiskLevel = "HIGH"
	LevelCritical RiskLevel = "CRITICAL"
)

// FestivalRisk grades how disruptive an upcoming festival is expected to be.
type FestivalRisk string

const (
	FestivalRiskLow      FestivalRisk = "LOW"
	FestivalRiskModerate FestivalRisk = "MODERATE"
	FestivalRiskHigh     FestivalRisk = "HIGH"
	FestivalRiskCritical FestivalRisk = "CRITICAL"
)

// SupplyStatus reflects the stock position of a single supply item.
type SupplyStatus string

const (
	SupplyOK       SupplyStatus = "OK"
	SupplyLow      SupplyStatus = "LOW"
	SupplyCritical SupplyStatus = "CRITICAL"
)

// Impact marks whether a reasoning step raises or lowers surge risk.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// FestivalSignal is one calendar entry handed in by the festival service.
type FestivalSignal struct {
	Name                    string       `json:"name"`
	DaysUntil               int          `json:"daysUntil"`
	ExpectedSurgeMultiplier float64      `json:"expectedSurgeMultiplier"`
	DepartmentsAffected     []string     `json:"departmentsAffected"`
	RiskLevel               FestivalRisk `json:"riskLevel"`
	IsTomorrow              bool         `json:"isTomorrow"`
}

// SupplyState is one supply item reading from the staffing/supply service.
type SupplyState struct {
	Name      string       `json:"name"`
	Status    SupplyStatus `json:"status"`
	Available int          `json:"available,omitempty"`
	Required  int          `json:"required,omitempty"`
}

// SignalSnapshot bundles every external reading for one assessment cycle.
// It is immutable once handed to the engine; absent numerics behave as zero
// and absent slices as empty.
type SignalSnapshot struct {
	AQI                         float64          `json:"aqi"`
	PM25                        float64          `json:"pm25"`
	TemperatureC                float64          `json:"temperatureC"`
	WeatherLabel                string           `json:"weatherLabel"`
	UpcomingFestivals           []FestivalSignal `json:"upcomingFestivals"`
	EpidemicCaseCount           int              `json:"epidemicCaseCount"`
	ActiveOutbreaks             []string         `json:"activeOutbreaks"`
	HospitalCapacityUtilization float64          `json:"hospitalCapacityUtilization"`
	SupplyStates                []SupplyState    `json:"supplyStates"`
	DataSources                 []string         `json:"dataSources,omitempty"`
}

// NearestFestival returns the upcoming festival with the fewest days until
// start, or false when the calendar window is empty.
func (s SignalSnapshot) NearestFestival() (FestivalSignal, bool) {
	if len(s.UpcomingFestivals) == 0 {
		return FestivalSignal{}, false
	}
	nearest := s.UpcomingFestivals[0]
	for _, festival := range s.UpcomingFestivals[1:] {
		if festival.DaysUntil < nearest.DaysUntil {
			nearest = festival
		}
	}
	return nearest, true
}

// ReasoningStep is one weighted, explained contributing factor. Steps keep
// detection order; they are never re-sorted by weight.
type ReasoningStep struct {
	Factor      string  `json:"factor"`
	Value       string  `json:"value"`
	Impact      Impact  `json:"impact"`
	Weight      float64 `json:"weight"`
	Explanation string  `json:"explanation"`
}

// AlternativeOption is a candidate response strategy with a comparative score.
type AlternativeOption struct {
	Option        string  `json:"option"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
	IsRecommended bool    `json:"isRecommended"`
}

// RiskAssessment is the decision artifact served to presentation surfaces.
// It is a value recomputed wholesale every cycle, never mutated in place.
type RiskAssessment struct {
	CompositeScore float64             `json:"compositeScore"`
	Level          RiskLevel           `json:"level"`
	Reasoning      []ReasoningStep     `json:"reasoning"`
	Confidence     float64             `json:"confidence"`
	Recommendation string              `json:"recommendation"`
	Alternatives   []AlternativeOption `json:"alternatives"`
}

// Request captures the payload accepted by the assessment service. A caller
// that already holds an upstream composite score may pass it through;
// otherwise the score is derived from the extracted factors.
type Request struct {
	Snapshot       SignalSnapshot `json:"snapshot"`
	CompositeScore *float64       `json:"compositeScore,omitempty"`
}
