// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// Reloader rebuilds and publishes a recommendation snapshot.
// *recommend.Engine satisfies it.
type Reloader interface {
	Reload(ctx context.Context) (*recommend.SnapshotStats, error)
}

// ReloadServiceConfig holds the reload schedule.
type ReloadServiceConfig struct {
	// OnStartup builds the first snapshot when the service starts.
	OnStartup bool

	// Interval rebuilds periodically. Zero disables the schedule.
	Interval time.Duration
}

// ReloadService keeps the engine snapshot fresh. A failed reload is logged
// and the previous snapshot keeps serving; the service itself never fails
// because of it.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates the reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "snapshot-reload").Logger(),
		name:     "snapshot-reload",
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("snapshot reload service starting")

	if s.config.OnStartup {
		s.reload(ctx, "startup")
	}

	// Without a schedule the service idles so suture does not restart it
	// and repeat the startup load.
	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot reload service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx, "schedule")
		}
	}
}

func (s *ReloadService) reload(ctx context.Context, trigger string) {
	stats, err := s.reloader.Reload(ctx)
	switch {
	case err == nil:
		s.logger.Info().
			Str("trigger", trigger).
			Uint64("version", stats.Version).
			Int("foods", stats.Foods).
			Int("users", stats.Users).
			Int("interactions", stats.Interactions).
			Int64("duration_ms", stats.BuildDurationMS).
			Msg("snapshot reloaded")
	case errors.Is(err, recommend.ErrReloadInProgress):
		s.logger.Debug().Str("trigger", trigger).Msg("reload skipped, another reload is running")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("snapshot reload failed, keeping previous snapshot")
	}
}

// String implements fmt.Stringer.
func (s *ReloadService) String() string {
	return s.name
}
