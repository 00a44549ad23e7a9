// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/foodrec/internal/api"
	"github.com/tomtom215/foodrec/internal/config"
	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/supervisor"
	"github.com/tomtom215/foodrec/internal/supervisor/services"
)

// runServe starts the supervised HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	logger := logging.Logger()
	logging.Info().Str("version", version).Str("config", cfg.String()).Msg("Starting Foodrec with supervisor tree")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	source, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeWithTimeout("data source", source.close)

	engine, err := buildEngine(cfg, source.source, logger)
	if err != nil {
		return err
	}

	recommender, closeCache := buildRecommender(ctx, cfg, engine, logger)
	defer closeWithTimeout("result cache", closeCache)

	handler := api.NewHandler(recommender, engine, cfg.EngineConfig().Limits, api.ServiceInfo{
		Version:      version,
		DataSource:   cfg.Dataset.Source,
		BreakerState: source.breakerState(),
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(cfg)))

	server := newHTTPServer(cfg, router.SetupChi())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddEngineService(services.NewReloadService(engine, services.ReloadServiceConfig{
		OnStartup: cfg.Recommend.ReloadOnStartup,
		Interval:  cfg.Recommend.ReloadInterval,
	}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop within the shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor stopped: %w", err)
	}

	logging.Info().Msg("Foodrec stopped")
	return nil
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}
}

func closeWithTimeout(what string, fn closer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		logging.Error().Err(err).Str("resource", what).Msg("Error during shutdown")
	}
}
