// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/recommend/algorithms"
)

// Observer receives engine events. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	// ObserveReload is called after every reload attempt with result
	// "success", "unavailable", "in_progress" or "error".
	ObserveReload(result string, duration time.Duration)

	// ObserveSnapshot is called when a new snapshot goes live.
	ObserveSnapshot(version uint64, foods, users, interactions int)

	// ObserveRecommendation is called once per served list.
	ObserveRecommendation(branch string)
}

type noopObserver struct{}

func (noopObserver) ObserveReload(string, time.Duration)   {}
func (noopObserver) ObserveSnapshot(uint64, int, int, int) {}
func (noopObserver) ObserveRecommendation(string)          {}

// Option configures an Engine.
type Option func(*Engine)

// WithFactorizer replaces the default ALS factorizer.
func WithFactorizer(factory FactorizerFactory) Option {
	return func(e *Engine) {
		if factory != nil {
			e.newFactorizer = factory
		}
	}
}

// WithObserver registers an Observer for reload and request events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// Engine serves recommendations from the current Snapshot. It is safe for
// concurrent use.
type Engine struct {
	config        *Config
	source        DataSource
	logger        zerolog.Logger
	newFactorizer FactorizerFactory
	observer      Observer

	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	// reloadMu serializes snapshot builds.
	reloadMu  sync.Mutex
	reloading atomic.Bool

	errMu   sync.RWMutex
	lastErr string
}

// NewEngine creates an Uninitialized engine reading from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source DataSource, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("recommend: nil data source")
	}

	e := &Engine{
		config:   cfg.Clone(),
		source:   source,
		logger:   logger.With().Str("component", "recommend").Logger(),
		observer: noopObserver{},
	}
	alsCfg := e.config.algorithmsALS()
	e.newFactorizer = func() Factorizer { return algorithms.NewALS(alsCfg) }

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Snapshot returns the live snapshot, or nil while Uninitialized.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Recommend returns up to topN food ids for userID using the hybrid scorer.
// Users without history receive the most popular foods. Unknown users are not
// an error.
func (e *Engine) Recommend(ctx context.Context, userID string, topN int) (*Result, error) {
	snap, err := e.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	res := snap.Recommend(userID, topN)
	e.observer.ObserveRecommendation(res.Branch.String())

	e.logger.Debug().
		Str("user_id", userID).
		Str("branch", res.Branch.String()).
		Int("top_n", topN).
		Int("returned", len(res.Items)).
		Uint64("snapshot_version", snap.Version).
		Msg("recommendation complete")

	return res, nil
}

// SimilarItems returns up to topN foods most similar in content to foodID.
func (e *Engine) SimilarItems(ctx context.Context, foodID string, topN int) (*Result, error) {
	snap, err := e.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	e.observer.ObserveRecommendation(BranchSimilar.String())
	return &Result{
		Subject:         foodID,
		Items:           snap.Content.SimilarItems(foodID, topN),
		Branch:          BranchSimilar,
		SnapshotVersion: snap.Version,
	}, nil
}

// Popular returns the topN most ordered foods.
func (e *Engine) Popular(ctx context.Context, topN int) (*Result, error) {
	snap, err := e.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	e.observer.ObserveRecommendation(BranchPopular.String())
	return &Result{
		Items:           snap.Popularity.Top(topN),
		Branch:          BranchPopular,
		SnapshotVersion: snap.Version,
	}, nil
}

// Reload loads the dataset and swaps in a freshly built snapshot. If a
// reload is already running it returns ErrReloadInProgress immediately.
// On failure the previous snapshot stays live.
func (e *Engine) Reload(ctx context.Context) (*SnapshotStats, error) {
	if !e.reloadMu.TryLock() {
		e.observer.ObserveReload("in_progress", 0)
		return nil, ErrReloadInProgress
	}
	defer e.reloadMu.Unlock()

	snap, err := e.reloadLocked(ctx)
	if err != nil {
		return nil, err
	}
	stats := snap.Stats()
	return &stats, nil
}

// ensureReady returns the live snapshot, building the first one on demand.
// Concurrent first callers wait for a single build.
func (e *Engine) ensureReady(ctx context.Context) (*Snapshot, error) {
	if snap := e.current.Load(); snap != nil {
		return snap, nil
	}

	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	if snap := e.current.Load(); snap != nil {
		return snap, nil
	}
	return e.reloadLocked(ctx)
}

// reloadLocked must be called with reloadMu held.
func (e *Engine) reloadLocked(ctx context.Context) (*Snapshot, error) {
	e.reloading.Store(true)
	defer e.reloading.Store(false)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.config.BuildTimeout)
	defer cancel()

	snap, err := e.build(ctx)
	duration := time.Since(start)
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, ErrDataUnavailable):
			result = "unavailable"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			result = "aborted"
		}
		e.observer.ObserveReload(result, duration)
		e.setLastError(err)

		e.logger.Error().
			Err(err).
			Dur("duration", duration).
			Bool("serving_previous", e.current.Load() != nil).
			Msg("snapshot reload failed")
		return nil, err
	}

	e.current.Store(snap)
	e.setLastError(nil)

	stats := snap.Stats()
	e.observer.ObserveReload("success", duration)
	e.observer.ObserveSnapshot(stats.Version, stats.Foods, stats.Users, stats.Interactions)

	e.logger.Info().
		Uint64("version", stats.Version).
		Int("foods", stats.Foods).
		Int("users", stats.Users).
		Int("interactions", stats.Interactions).
		Int("matrix_entries", stats.MatrixEntries).
		Int("vocabulary", stats.VocabularySize).
		Dur("duration", duration).
		Msg("snapshot reloaded")

	return snap, nil
}

func (e *Engine) build(ctx context.Context) (*Snapshot, error) {
	ds, err := e.source.Load(ctx)
	if err != nil {
		// An aborted or timed-out build says nothing about the store.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("load dataset: %w", ctxErr)
		}
		if errors.Is(err, ErrDataUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	version := e.version.Load() + 1
	snap, err := BuildSnapshot(ctx, ds, e.config, e.newFactorizer(), version)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	e.version.Store(version)
	return snap, nil
}

func (e *Engine) setLastError(err error) {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	if err == nil {
		e.lastErr = ""
		return
	}
	e.lastErr = err.Error()
}

// Status reports readiness, reload activity and live snapshot statistics.
func (e *Engine) Status() Status {
	e.errMu.RLock()
	lastErr := e.lastErr
	e.errMu.RUnlock()

	st := Status{
		Reloading: e.reloading.Load(),
		LastError: lastErr,
	}
	if snap := e.current.Load(); snap != nil {
		stats := snap.Stats()
		st.Ready = true
		st.Snapshot = &stats
	}
	return st
}
