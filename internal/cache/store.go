// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry expiration.
type Store interface {
	// Get returns the value and true when key is present and not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Name identifies the tier in logs and metrics.
	Name() string
}

// Observer receives cache lookup outcomes per tier.
type Observer interface {
	ObserveCacheLookup(tier string, hit bool)
}

type noopObserver struct{}

func (noopObserver) ObserveCacheLookup(string, bool) {}
