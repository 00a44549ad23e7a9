// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/api"
	"github.com/tomtom215/foodrec/internal/cache"
	"github.com/tomtom215/foodrec/internal/config"
	"github.com/tomtom215/foodrec/internal/datasource"
	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/metrics"
	"github.com/tomtom215/foodrec/internal/recommend"
)

// closer releases a resource on shutdown.
type closer func(ctx context.Context) error

func noopCloser(context.Context) error { return nil }

// loadConfig loads configuration and initializes the global logger. Logs go
// to logOutput when it is non-nil.
func loadConfig(logOutput io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	lc := cfg.LoggingSetup()
	if logOutput != nil {
		lc.Output = logOutput
	}
	logging.Init(lc)

	return cfg, nil
}

// dataSource is the configured dataset loader.
type dataSource struct {
	source recommend.DataSource

	// guarded is set for sources behind a circuit breaker.
	guarded *datasource.GuardedSource

	close closer
}

// breakerState reports the breaker for the health endpoint, or nil when the
// source has none.
func (d *dataSource) breakerState() func() string {
	if d.guarded == nil {
		return nil
	}
	return d.guarded.State
}

// buildSource opens the configured data source. An unreachable MongoDB is
// not fatal: the client keeps dialing and loads report ErrDataUnavailable
// until the server is up.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildSource(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*dataSource, error) {
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		logger.Info().Str("dir", cfg.Dataset.CSVDir).Msg("using csv data source")
		return &dataSource{
			source: datasource.NewCSVSource(cfg.Dataset.CSVDir, logger),
			close:  noopCloser,
		}, nil

	case config.SourceMongo:
		mongoCfg := cfg.MongoSourceConfig()
		client, err := datasource.Connect(ctx, mongoCfg)
		if err != nil {
			logger.Warn().Err(err).Msg("mongodb unreachable at startup, loads will fail until it is available")
			client, err = datasource.Open(mongoCfg)
			if err != nil {
				return nil, err
			}
		} else {
			logger.Info().Str("database", mongoCfg.Database).Msg("connected to mongodb")
		}

		mongoSource := datasource.NewMongoSource(client, mongoCfg, logger)
		guarded := datasource.NewGuardedSource(mongoSource, cfg.BreakerConfig("mongo"), logger, metrics.RecordBreakerTransition)
		return &dataSource{
			source:  guarded,
			guarded: guarded,
			close:   mongoSource.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// buildEngine creates the recommendation engine with Prometheus observation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildEngine(cfg *config.Config, source recommend.DataSource, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(cfg.EngineConfig(), source, logger, recommend.WithObserver(metrics.Recorder{}))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, nil
}

// buildRecommender puts the result cache in front of engine. The in-memory
// tier is always present; Redis is added when enabled and reachable.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildRecommender(ctx context.Context, cfg *config.Config, engine *recommend.Engine, logger zerolog.Logger) (api.Recommender, closer) {
	ttl := cfg.Recommend.CacheTTL
	if ttl <= 0 {
		logger.Info().Msg("result cache disabled")
		return engine, noopCloser
	}

	tiers := []cache.Store{cache.NewMemoryStore(cfg.Recommend.CacheCapacity, ttl)}
	closeCache := noopCloser

	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisStoreConfig())
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-memory result cache only")
		} else {
			tiers = append(tiers, redisStore)
			closeCache = func(context.Context) error { return redisStore.Close() }
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis result cache enabled")
		}
	}

	store := cache.NewTiered(ttl, logger, metrics.Recorder{}, tiers...)
	return cache.NewCachedRecommender(engine, store, ttl, metrics.Recorder{}, logger), closeCache
}

// middlewareConfig maps the security section onto the router middleware.
func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
