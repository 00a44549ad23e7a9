// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// StaticSource serves an in-memory dataset. Set replaces it, which lets a
// caller simulate catalog changes between reloads.
type StaticSource struct {
	mu sync.RWMutex
	ds *recommend.Dataset
}

// NewStaticSource creates a source serving ds. A nil ds behaves as an
// unavailable store.
func NewStaticSource(ds *recommend.Dataset) *StaticSource {
	return &StaticSource{ds: ds}
}

// Set replaces the served dataset.
func (s *StaticSource) Set(ds *recommend.Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()
}

// Load implements recommend.DataSource. Each call returns an independent copy.
func (s *StaticSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ds == nil {
		return nil, fmt.Errorf("%w: no dataset configured", recommend.ErrDataUnavailable)
	}
	if len(s.ds.Foods) == 0 {
		return nil, fmt.Errorf("%w: no valid foods", recommend.ErrDataUnavailable)
	}

	return &recommend.Dataset{
		Foods:        slices.Clone(s.ds.Foods),
		Interactions: slices.Clone(s.ds.Interactions),
		Users:        slices.Clone(s.ds.Users),
	}, nil
}
