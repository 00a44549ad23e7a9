// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// BreakerConfig holds circuit breaker settings.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Failures before opening
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// StateListener is called after every breaker state transition.
type StateListener func(name string, from, to gobreaker.State)

// GuardedSource wraps a DataSource with a circuit breaker. While the breaker
// is open, Load fails fast with ErrDataUnavailable instead of waiting on a
// store that is known to be down.
type GuardedSource struct {
	source  recommend.DataSource
	breaker *gobreaker.CircuitBreaker[*recommend.Dataset]
}

// NewGuardedSource wraps source. listener may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGuardedSource(source recommend.DataSource, cfg BreakerConfig, logger zerolog.Logger, listener StateListener) *GuardedSource {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Cancellation is the caller giving up, not the store failing.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("data source circuit breaker state changed")
			if listener != nil {
				listener(name, from, to)
			}
		},
	}

	return &GuardedSource{
		source:  source,
		breaker: gobreaker.NewCircuitBreaker[*recommend.Dataset](settings),
	}
}

// Load implements recommend.DataSource.
func (g *GuardedSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	ds, err := g.breaker.Execute(func() (*recommend.Dataset, error) {
		return g.source.Load(ctx)
	})
	if err == nil {
		return ds, nil
	}
	if ctx.Err() != nil || errors.Is(err, recommend.ErrDataUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", recommend.ErrDataUnavailable, err)
}

// State returns the breaker state for monitoring.
func (g *GuardedSource) State() string {
	return g.breaker.State().String()
}

// Name returns the breaker name.
func (g *GuardedSource) Name() string {
	return g.breaker.Name()
}
