// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// Recommender serves ranked lists. Both *recommend.Engine and
// *cache.CachedRecommender satisfy it.
type Recommender interface {
	Recommend(ctx context.Context, userID string, topN int) (*recommend.Result, error)
	SimilarItems(ctx context.Context, foodID string, topN int) (*recommend.Result, error)
	Popular(ctx context.Context, topN int) (*recommend.Result, error)
}

// Controller reloads the engine and reports its state.
type Controller interface {
	Reload(ctx context.Context) (*recommend.SnapshotStats, error)
	Status() recommend.Status
}

// ServiceInfo describes the running service for the health endpoints.
type ServiceInfo struct {
	Version string

	// DataSource names the configured backing store ("mongo", "csv").
	DataSource string

	// BreakerState reports the data source circuit breaker, if any.
	BreakerState func() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommend, similar, popular
//   - handlers_reload.go: reload-data
//   - handlers_health.go: root status and probes
//   - handlers_helpers.go: response and parameter helpers
type Handler struct {
	recommender Recommender
	controller  Controller
	limits      recommend.LimitsConfig
	info        ServiceInfo
	startTime   time.Time
}

// NewHandler creates a new API handler. Reads go through recommender, which
// may be a caching layer in front of the engine; reloads and status go to
// controller.
func NewHandler(recommender Recommender, controller Controller, limits recommend.LimitsConfig, info ServiceInfo) *Handler {
	if info.Version == "" {
		info.Version = "dev"
	}
	return &Handler{
		recommender: recommender,
		controller:  controller,
		limits:      limits,
		info:        info,
		startTime:   time.Now(),
	}
}
