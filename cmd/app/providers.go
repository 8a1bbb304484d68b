package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/kiranraj/surgesight/internal/domain/monitor"
	"github.com/kiranraj/surgesight/internal/infra/assessrepo"
	"github.com/kiranraj/surgesight/internal/infra/assessstore"
	"github.com/kiranraj/surgesight/internal/infra/collectors"
	"github.com/kiranraj/surgesight/internal/infra/config"
	"github.com/kiranraj/surgesight/internal/infra/envmon"
	"github.com/kiranraj/surgesight/internal/infra/epidemics"
	"github.com/kiranraj/surgesight/internal/infra/festivals"
	"github.com/kiranraj/surgesight/internal/infra/staffing"
)

func provideMonitorConfig(cfg *config.Config) monitor.Config {
	return monitor.Config{
		Interval:       cfg.Monitor.Interval,
		RequestTimeout: cfg.Monitor.RequestTimeout,
		HistoryLimit:   cfg.Monitor.HistoryLimit,
	}
}

func provideEnvironmentClient(cfg *config.Config) *envmon.Client {
	return envmon.NewClient(cfg.Sources.Environment.BaseURL)
}

func provideFestivalClient(cfg *config.Config) *festivals.Client {
	return festivals.NewClient(cfg.Sources.Festivals.BaseURL)
}

func provideEpidemicClient(cfg *config.Config) *epidemics.Client {
	return epidemics.NewClient(cfg.Sources.Epidemics.BaseURL)
}

func provideStaffingClient(cfg *config.Config) *staffing.Client {
	return staffing.NewClient(cfg.Sources.Staffing.BaseURL)
}

func provideCollector(cfg *config.Config, env *envmon.Client, fest *festivals.Client, epi *epidemics.Client, staff *staffing.Client, logger *slog.Logger) monitor.Collector {
	return collectors.NewComposite(env, fest, epi, staff, cfg.Sources.Festivals.LookaheadDays, logger)
}

func provideCycleStore(cfg *config.Config, logger *slog.Logger) monitor.Store {
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return assessstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return assessstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey cycle store enabled", "addr", cfg.Cache.Valkey.Addr)
			return assessstore.NewValkeyStore(client, "surgesight")
		}
	}
	return assessstore.NewMemoryStore()
}

func provideHistory(cfg *config.Config, logger *slog.Logger) monitor.History {
	fallback := assessrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return assessrepo.NewPostgresRepository(pool)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
