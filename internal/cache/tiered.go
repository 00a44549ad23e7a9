// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Tiered reads through stores in order, fastest first. A hit in a slower
// tier is copied into every faster tier with the backfill TTL. Set writes to
// all tiers.
type Tiered struct {
	tiers       []Store
	backfillTTL time.Duration
	observer    Observer
	logger      zerolog.Logger
}

// NewTiered creates a tiered store. observer may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTiered(backfillTTL time.Duration, logger zerolog.Logger, observer Observer, tiers ...Store) *Tiered {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Tiered{
		tiers:       tiers,
		backfillTTL: backfillTTL,
		observer:    observer,
		logger:      logger.With().Str("component", "cache").Logger(),
	}
}

// Name implements Store.
func (t *Tiered) Name() string {
	return "tiered"
}

// Get implements Store. A failing tier counts as a miss and never returns
// an error.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	for i, tier := range t.tiers {
		val, ok, err := tier.Get(ctx, key)
		if err != nil {
			t.logger.Warn().Err(err).Str("tier", tier.Name()).Str("key", key).Msg("cache tier get failed")
			t.observer.ObserveCacheLookup(tier.Name(), false)
			continue
		}
		t.observer.ObserveCacheLookup(tier.Name(), ok)
		if !ok {
			continue
		}

		for _, faster := range t.tiers[:i] {
			if err := faster.Set(ctx, key, val, t.backfillTTL); err != nil {
				t.logger.Warn().Err(err).Str("tier", faster.Name()).Msg("cache backfill failed")
			}
		}
		return val, true, nil
	}
	return nil, false, nil
}

// Set implements Store. It writes every tier and joins the failures.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Set(ctx, key, value, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
