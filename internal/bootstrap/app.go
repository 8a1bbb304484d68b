package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiranraj/surgesight/internal/domain/monitor"
	"github.com/kiranraj/surgesight/internal/infra/config"
)

// App encapsulates the HTTP server and refresh loop lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	mon    *monitor.Monitor
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, mon *monitor.Monitor) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, mon: mon}
}

// Run starts the refresh loop and HTTP server, blocking until shutdown.
func (a *App) Run(ctx context.Context) error {
	monCtx, cancelMonitor := context.WithCancel(ctx)
	defer cancelMonitor()

	monErrCh := make(chan error, 1)
	go func() {
		a.logger.Info("monitor starting", "interval", a.cfg.Monitor.Interval.String())
		monErrCh <- a.mon.Run(monCtx)
	}()

	srvErrCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			srvErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.shutdown(cancelMonitor, monErrCh)
	case err := <-srvErrCh:
		cancelMonitor()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-monErrCh:
		// The monitor only returns early on an unrecoverable store fault.
		_ = a.shutdown(func() {}, nil)
		return err
	}
}

func (a *App) shutdown(cancelMonitor context.CancelFunc, monErrCh chan error) error {
	cancelMonitor()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if monErrCh != nil {
		select {
		case err := <-monErrCh:
			return err
		case <-shutdownCtx.Done():
		}
	}
	return nil
}
