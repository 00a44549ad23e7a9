// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodrec/internal/config"
	"github.com/tomtom215/foodrec/internal/models"
)

const testFoods = `food_id,name,description,category
f1,Chicken Curry,spicy chicken curry with rice,main
f2,Mild Curry,mild chicken curry,main
f3,Chocolate Cake,rich chocolate cake,dessert
f4,Vanilla Cake,light vanilla cake,dessert
`

const testOrders = `user_id,food_id,interaction,timestamp
u1,f1,1,2024-01-01T10:00:00Z
u1,f2,1,2024-01-02T10:00:00Z
u2,f1,1,2024-01-01T11:00:00Z
u2,f3,1,2024-01-03T11:00:00Z
u3,f1,1,2024-01-01T12:00:00Z
u3,f3,1,2024-01-04T12:00:00Z
`

// csvEnv points the configuration at a temporary CSV dataset.
func csvEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "foods.csv"), []byte(testFoods), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "orders.csv"), []byte(testOrders), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)
	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv(config.DotenvPathEnvVar, "")
	t.Setenv("DATASET_SOURCE", "csv")
	t.Setenv("DATASET_CSV_DIR", dir)
	t.Setenv("RECOMMEND_FACTORS", "4")
	t.Setenv("RECOMMEND_ITERATIONS", "5")
	t.Setenv("RECOMMEND_WORKERS", "1")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPopularCommand(t *testing.T) {
	csvEnv(t)

	out, err := execute(t, "popular", "--top-n", "2")
	if err != nil {
		t.Fatalf("popular: %v", err)
	}

	var resp models.PopularResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !slices.Equal(resp.Recommendations, []string{"f1", "f3"}) || resp.Count != 2 {
		t.Errorf("popular = %+v, want [f1 f3]", resp)
	}
}

func TestRecommendCommand(t *testing.T) {
	csvEnv(t)

	t.Run("cold start falls back to popularity", func(t *testing.T) {
		out, err := execute(t, "recommend", "ghost", "-n", "3")
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		var resp models.RecommendResponse
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if resp.UserID != "ghost" || !slices.Equal(resp.Recommendations, []string{"f1", "f3", "f2"}) {
			t.Errorf("recommend ghost = %+v", resp)
		}
	})

	t.Run("known user gets a deduplicated list", func(t *testing.T) {
		out, err := execute(t, "recommend", "u1", "--top-n", "4")
		if err != nil {
			t.Fatalf("recommend: %v", err)
		}
		var resp models.RecommendResponse
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if resp.Count != len(resp.Recommendations) || resp.Count > 4 {
			t.Errorf("count = %d, items = %v", resp.Count, resp.Recommendations)
		}
		seen := map[string]bool{}
		for _, id := range resp.Recommendations {
			if seen[id] {
				t.Errorf("duplicate %s in %v", id, resp.Recommendations)
			}
			seen[id] = true
		}
	})

	t.Run("blank user is rejected", func(t *testing.T) {
		if _, err := execute(t, "recommend", "  "); err == nil {
			t.Error("expected an error for a blank user id")
		}
	})
}

func TestSimilarCommand(t *testing.T) {
	csvEnv(t)

	out, err := execute(t, "similar", "f3", "--top-n", "1")
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	var resp models.SimilarResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !slices.Equal(resp.Similar, []string{"f4"}) {
		t.Errorf("similar f3 = %+v, want [f4]", resp)
	}

	out, err = execute(t, "similar", "nope")
	if err != nil {
		t.Fatalf("similar unknown: %v", err)
	}
	resp = models.SimilarResponse{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Count != 0 || resp.Similar == nil || len(resp.Similar) != 0 {
		t.Errorf("unknown food should yield an empty list, got %s", out)
	}
}

func TestQueryCommandErrors(t *testing.T) {
	dir := csvEnv(t)

	t.Run("top-n above maximum", func(t *testing.T) {
		if _, err := execute(t, "popular", "--top-n", "1000"); err == nil || !strings.Contains(err.Error(), "--top-n") {
			t.Errorf("err = %v, want --top-n bound error", err)
		}
	})

	t.Run("missing dataset", func(t *testing.T) {
		t.Setenv("DATASET_CSV_DIR", filepath.Join(dir, "missing"))
		if _, err := execute(t, "popular"); err == nil {
			t.Error("expected an error for a missing dataset directory")
		}
	})
}

func TestResolveTopN(t *testing.T) {
	cfg := &config.Config{Recommend: config.RecommendConfig{DefaultTopN: 10, MaxTopN: 50}}

	tests := []struct {
		requested int
		want      int
		wantErr   bool
	}{
		{0, 10, false},
		{1, 1, false},
		{50, 50, false},
		{51, 0, true},
		{-3, 0, true},
	}

	for _, tt := range tests {
		got, err := resolveTopN(tt.requested, cfg)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveTopN(%d) = %d, %v", tt.requested, got, err)
		}
	}
}

func TestMiddlewareConfig(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSOrigins:     []string{"https://app.example"},
		RateLimitReqs:   7,
		RateLimitWindow: 30 * time.Second,
	}}

	mw := middlewareConfig(cfg)
	if !slices.Equal(mw.CORSAllowedOrigins, []string{"https://app.example"}) {
		t.Errorf("origins = %v", mw.CORSAllowedOrigins)
	}
	if mw.RateLimitRequests != 7 || mw.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d per %v", mw.RateLimitRequests, mw.RateLimitWindow)
	}
}
