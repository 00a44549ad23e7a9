// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package cache

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// Key kinds.
const (
	KindUser    = "user"
	KindSimilar = "similar"
	KindPopular = "popular"
)

// Key builds the cache key of a result list. subject is escaped so that ids
// containing separators cannot collide.
func Key(version uint64, kind, subject string, n int) string {
	if subject == "" {
		subject = "-"
	}
	return fmt.Sprintf("rec:v%d:%s:%s:n:%d", version, kind, url.QueryEscape(subject), n)
}

// ResultObserver is told the branch of every list served from the cache.
// Lists computed by the Backend are reported by the Backend itself.
type ResultObserver interface {
	ObserveRecommendation(branch string)
}

type noopResultObserver struct{}

func (noopResultObserver) ObserveRecommendation(string) {}

// Backend is the uncached recommendation source.
type Backend interface {
	Recommend(ctx context.Context, userID string, topN int) (*recommend.Result, error)
	SimilarItems(ctx context.Context, foodID string, topN int) (*recommend.Result, error)
	Popular(ctx context.Context, topN int) (*recommend.Result, error)

	// Snapshot returns the live snapshot or nil before the first load.
	Snapshot() *recommend.Snapshot
}

// CachedRecommender serves result lists from a Store and falls back to the
// Backend on a miss.
type CachedRecommender struct {
	backend  Backend
	store    Store
	ttl      time.Duration
	observer ResultObserver
	logger   zerolog.Logger
}

// NewCachedRecommender wraps backend. ttl applies to stored lists. observer
// may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCachedRecommender(backend Backend, store Store, ttl time.Duration, observer ResultObserver, logger zerolog.Logger) *CachedRecommender {
	if observer == nil {
		observer = noopResultObserver{}
	}
	return &CachedRecommender{
		backend:  backend,
		store:    store,
		ttl:      ttl,
		observer: observer,
		logger:   logger.With().Str("component", "result_cache").Logger(),
	}
}

// Recommend returns the hybrid list for userID.
func (c *CachedRecommender) Recommend(ctx context.Context, userID string, topN int) (*recommend.Result, error) {
	return c.cached(ctx, KindUser, userID, topN, func() (*recommend.Result, error) {
		return c.backend.Recommend(ctx, userID, topN)
	})
}

// SimilarItems returns the content neighbours of foodID.
func (c *CachedRecommender) SimilarItems(ctx context.Context, foodID string, topN int) (*recommend.Result, error) {
	return c.cached(ctx, KindSimilar, foodID, topN, func() (*recommend.Result, error) {
		return c.backend.SimilarItems(ctx, foodID, topN)
	})
}

// Popular returns the popularity ranking.
func (c *CachedRecommender) Popular(ctx context.Context, topN int) (*recommend.Result, error) {
	return c.cached(ctx, KindPopular, "", topN, func() (*recommend.Result, error) {
		return c.backend.Popular(ctx, topN)
	})
}

func (c *CachedRecommender) cached(ctx context.Context, kind, subject string, n int, compute func() (*recommend.Result, error)) (*recommend.Result, error) {
	if snap := c.backend.Snapshot(); snap != nil {
		if res, ok := c.lookup(ctx, Key(snap.Version, kind, subject, n)); ok {
			c.observer.ObserveRecommendation(res.Branch.String())
			return res, nil
		}
	}

	res, err := compute()
	if err != nil {
		return nil, err
	}

	c.save(ctx, Key(res.SnapshotVersion, kind, subject, n), res)
	return res, nil
}

func (c *CachedRecommender) lookup(ctx context.Context, key string) (*recommend.Result, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("result cache get failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var res recommend.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached result")
		return nil, false
	}
	if res.Items == nil {
		res.Items = []string{}
	}
	return &res, true
}

func (c *CachedRecommender) save(ctx context.Context, key string, res *recommend.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("result encode failed")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("result cache set failed")
	}
}
