package assessment

import (
	"fmt"
	"math"
	"strings"
)

const (
	weightAQISevere   = 40.0
	weightAQIElevated = 25.0
	weightFestival    = 30.0
	weightEpidemic    = 20.0
	weightCapacity    = 15.0

	aqiTriggerThreshold = 200.0
	aqiSevereThreshold  = 300.0
	epidemicThreshold   = 100
)

// extractFactors turns a snapshot into the ordered list of contributing
// factors. Rules are additive and independently evaluated; a factor is never
// suppressed once its trigger holds. Order is fixed: AQI, festival, epidemic,
// capacity.
func extractFactors(snapshot SignalSnapshot) []ReasoningStep {
	steps := make([]ReasoningStep, 0, 4)

	if snapshot.AQI > aqiTriggerThreshold {
		weight := weightAQIElevated
		if snapshot.AQI > aqiSevereThreshold {
			weight = weightAQISevere
		}
		steps = append(steps, ReasoningStep{
			Factor:      "Air Quality Index",
			Value:       fmt.Sprintf("AQI %.0f", snapshot.AQI),
			Impact:      ImpactNegative,
			Weight:      weight,
			Explanation: fmt.Sprintf("AQI at %.0f correlates with a sharp rise in respiratory cases presenting to the ER.", snapshot.AQI),
		})
	}

	if festival, ok := snapshot.NearestFestival(); ok {
		departments := strings.Join(festival.DepartmentsAffected, ", ")
		if departments == "" {
			departments = "all departments"
		}
		steps = append(steps, ReasoningStep{
			Factor:      festival.Name,
			Value:       fmt.Sprintf("in %d days", festival.DaysUntil),
			Impact:      ImpactNegative,
			Weight:      weightFestival,
			Explanation: fmt.Sprintf("%s is expected to multiply patient inflow by %.1fx, primarily affecting %s.", festival.Name, festival.ExpectedSurgeMultiplier, departments),
		})
	}

	if snapshot.EpidemicCaseCount > epidemicThreshold {
		steps = append(steps, ReasoningStep{
			Factor:      "Active Epidemic Outbreaks",
			Value:       fmt.Sprintf("%d cases", snapshot.EpidemicCaseCount),
			Impact:      ImpactNegative,
			Weight:      weightEpidemic,
			Explanation: fmt.Sprintf("%d active outbreaks are under surveillance and already driving admissions.", len(snapshot.ActiveOutbreaks)),
		})
	}

	buffer := math.Round((1 - snapshot.HospitalCapacityUtilization) * 100)
	steps = append(steps, ReasoningStep{
		Factor:      "Current Hospital Capacity",
		Value:       fmt.Sprintf("%.0f%% utilized", snapshot.HospitalCapacityUtilization*100),
		Impact:      ImpactPositive,
		Weight:      weightCapacity,
		Explanation: fmt.Sprintf("Hospital retains a %.0f%% bed buffer and can accommodate a surge of that magnitude.", buffer),
	})

	return steps
}

// deriveScore reduces the factor list to a composite score: negative factors
// add their weight, positive factors subtract theirs. Clamped to [0, 100].
func deriveScore(steps []ReasoningStep) float64 {
	total := 0.0
	for _, step := range steps {
		switch step.Impact {
		case ImpactNegative:
			total += step.Weight
		case ImpactPositive:
			total -= step.Weight
		}
	}
	return clamp(total, 0, 100)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
