//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/kiranraj/surgesight/internal/bootstrap"
	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
	"github.com/kiranraj/surgesight/internal/domain/monitor"
	"github.com/kiranraj/surgesight/internal/infra/config"
	httpiface "github.com/kiranraj/surgesight/internal/interface/http"
	"github.com/kiranraj/surgesight/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideMonitorConfig,
		provideEnvironmentClient,
		provideFestivalClient,
		provideEpidemicClient,
		provideStaffingClient,
		provideCollector,
		provideCycleStore,
		provideHistory,
		assessment.NewService,
		alerting.NewEngine,
		monitor.NewMonitor,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
