// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return f.err
}
func (failingStore) Name() string { return "broken" }

type recordingObserver struct {
	mu      sync.Mutex
	lookups map[string][2]int // tier -> [hits, misses]
}

func (r *recordingObserver) ObserveCacheLookup(tier string, hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookups == nil {
		r.lookups = make(map[string][2]int)
	}
	c := r.lookups[tier]
	if hit {
		c[0]++
	} else {
		c[1]++
	}
	r.lookups[tier] = c
}

func TestTiered_BackfillsFasterTier(t *testing.T) {
	t.Parallel()

	fast := NewMemoryStore(10, time.Minute)
	slow := NewMemoryStore(10, time.Minute)
	obs := &recordingObserver{}
	tiered := NewTiered(time.Minute, zerolog.Nop(), obs, fast, slow)
	ctx := context.Background()

	_ = slow.Set(ctx, "k", []byte("v"), 0)

	v, ok, err := tiered.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
	if _, ok := mustGet(t, fast, "k"); !ok {
		t.Error("fast tier should have been backfilled")
	}

	// memory is the name of both tiers: first lookup misses fast and hits slow.
	if got := obs.lookups["memory"]; got != [2]int{1, 1} {
		t.Errorf("lookups = %v", obs.lookups)
	}
}

func TestTiered_FailingTierIsMiss(t *testing.T) {
	t.Parallel()

	down := failingStore{err: errors.New("connection refused")}
	mem := NewMemoryStore(10, time.Minute)
	tiered := NewTiered(time.Minute, zerolog.Nop(), nil, down, mem)
	ctx := context.Background()

	if _, ok, err := tiered.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get on empty tiers = %v, %v", ok, err)
	}

	err := tiered.Set(ctx, "k", []byte("v"), 0)
	if err == nil {
		t.Error("Set should report the failing tier")
	}
	if _, ok := mustGet(t, mem, "k"); !ok {
		t.Error("healthy tier should still be written")
	}

	v, ok, err := tiered.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}
	if tiered.Name() != "tiered" {
		t.Errorf("Name() = %s", tiered.Name())
	}
}
