package collectors

import (
	"context"
	"log/slog"

	"github.com/kiranraj/surgesight/internal/domain/assessment"
	"github.com/kiranraj/surgesight/internal/infra/envmon"
	"github.com/kiranraj/surgesight/internal/infra/epidemics"
	"github.com/kiranraj/surgesight/internal/infra/staffing"
	apperrors "github.com/kiranraj/surgesight/pkg/errors"
)

// EnvironmentClient supplies air quality and weather readings.
type EnvironmentClient interface {
	Fetch(ctx context.Context) (envmon.Reading, error)
}

// FestivalClient supplies upcoming festival signals within a window.
type FestivalClient interface {
	Fetch(ctx context.Context, lookaheadDays int) ([]assessment.FestivalSignal, error)
}

// EpidemicClient supplies the outbreak surveillance summary.
type EpidemicClient interface {
	Fetch(ctx context.Context) (epidemics.Surveillance, error)
}

// StaffingClient supplies staffing levels and supply states.
type StaffingClient interface {
	Fetch(ctx context.Context) (staffing.Resources, error)
}

// Composite assembles one SignalSnapshot from the four collaborator
// services. The environmental source is mandatory; a failure there fails
// the whole cycle. Secondary sources degrade to zero-value readings, since
// the engine treats an absent signal as the absence of that risk.
type Composite struct {
	env           EnvironmentClient
	festivals     FestivalClient
	epidemics     EpidemicClient
	staffing      StaffingClient
	lookaheadDays int
	logger        *slog.Logger
}

// NewComposite wires the snapshot collector.
func NewComposite(env EnvironmentClient, festivals FestivalClient, epi EpidemicClient, staff StaffingClient, lookaheadDays int, logger *slog.Logger) *Composite {
	return &Composite{
		env:           env,
		festivals:     festivals,
		epidemics:     epi,
		staffing:      staff,
		lookaheadDays: lookaheadDays,
		logger:        logger.With("component", "collectors.composite"),
	}
}

// Collect retrieves every source and folds them into a snapshot. The
// DataSources list records which sources actually answered; the confidence
// estimator treats it as the snapshot's provenance declaration.
func (c *Composite) Collect(ctx context.Context) (assessment.SignalSnapshot, error) {
	reading, err := c.env.Fetch(ctx)
	if err != nil {
		return assessment.SignalSnapshot{}, apperrors.Wrap("source_error", "environment source unavailable", err)
	}

	snapshot := assessment.SignalSnapshot{
		AQI:          reading.AQI,
		PM25:         reading.PM25,
		TemperatureC: reading.TemperatureC,
		WeatherLabel: reading.WeatherLabel,
		DataSources:  []string{"environment"},
	}

	if festivals, err := c.festivals.Fetch(ctx, c.lookaheadDays); err != nil {
		c.logger.Warn("festival source degraded to empty calendar", "error", err)
	} else {
		snapshot.UpcomingFestivals = festivals
		snapshot.DataSources = append(snapshot.DataSources, "festivals")
	}

	if surveillance, err := c.epidemics.Fetch(ctx); err != nil {
		c.logger.Warn("surveillance source degraded to zero cases", "error", err)
	} else {
		snapshot.EpidemicCaseCount = surveillance.TotalCases
		snapshot.ActiveOutbreaks = surveillance.ActiveOutbreaks
		snapshot.DataSources = append(snapshot.DataSources, "epidemics")
	}

	if resources, err := c.staffing.Fetch(ctx); err != nil {
		c.logger.Warn("staffing source degraded to empty supplies", "error", err)
	} else {
		snapshot.HospitalCapacityUtilization = resources.CapacityUtilization
		snapshot.SupplyStates = resources.Supplies
		snapshot.DataSources = append(snapshot.DataSources, "staffing")
	}

	return snapshot, nil
}
