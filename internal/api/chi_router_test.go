// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/cache"
	"github.com/tomtom215/foodrec/internal/datasource"
	"github.com/tomtom215/foodrec/internal/models"
	"github.com/tomtom215/foodrec/internal/recommend"
)

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t, &fakeService{}), http.MethodGet, "/api/v1/unknown")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Error == nil || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeService{})
	req := httptest.NewRequest(http.MethodGet, "/popular", nil)
	req.Header.Set("X-Request-ID", "trace-abc")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-abc" {
		t.Errorf("X-Request-ID = %q", got)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestRouter_HSTSBehindProxy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	newTestServer(t, &fakeService{}).ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS behind a TLS-terminating proxy")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://menu.example.com"}
	cfg.RateLimitDisabled = true
	svc := &fakeService{}
	server := NewRouter(NewHandler(svc, svc, testLimits(), ServiceInfo{}), NewChiMiddleware(cfg)).SetupChi()

	tests := []struct {
		origin string
		allow  bool
	}{
		{"https://menu.example.com", true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/recommend/u1", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		got := rec.Header().Get("Access-Control-Allow-Origin")
		if tt.allow && got != tt.origin {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q", tt.origin, got)
		}
		if !tt.allow && got != "" {
			t.Errorf("origin %s should not be allowed, got %q", tt.origin, got)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	svc := &fakeService{}
	server := NewRouter(NewHandler(svc, svc, testLimits(), ServiceInfo{}), NewChiMiddleware(cfg)).SetupChi()

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/popular", nil)
		req.RemoteAddr = "192.0.2.10:4711"
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			if resp := decodeEnvelope(t, rec); resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimited {
				t.Errorf("429 envelope = %+v", resp)
			}
		}
	}

	if !slices.Equal(codes, []int{200, 200, 429}) {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeService{})
	doRequest(t, server, http.MethodGet, "/popular")

	rec := doRequest(t, server, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics exposition missing api_requests_total")
	}
}

// TestRouter_EndToEnd serves a real engine behind the result cache.
func TestRouter_EndToEnd(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	source := datasource.NewStaticSource(&recommend.Dataset{
		Foods: []recommend.FoodItem{
			{ID: "f1", Name: "Margherita Pizza", Description: "tomato mozzarella basil", Category: "pizza"},
			{ID: "f2", Name: "Pepperoni Pizza", Description: "tomato mozzarella pepperoni", Category: "pizza"},
			{ID: "f3", Name: "Caesar Salad", Description: "romaine croutons parmesan", Category: "salad"},
		},
		Interactions: []recommend.Interaction{
			{UserID: "u1", FoodID: "f1", Weight: 1, Timestamp: ts},
			{UserID: "u2", FoodID: "f1", Weight: 1, Timestamp: ts},
			{UserID: "u2", FoodID: "f2", Weight: 1, Timestamp: ts.Add(time.Hour)},
		},
	})

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	cached := cache.NewCachedRecommender(engine, cache.NewMemoryStore(100, time.Minute), time.Minute, nil, zerolog.Nop())

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	h := NewHandler(cached, engine, engine.Config().Limits, ServiceInfo{DataSource: "static"})
	server := NewRouter(h, NewChiMiddleware(cfg)).SetupChi()

	// Not ready before the first load.
	if rec := doRequest(t, server, http.MethodGet, "/api/v1/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before load = %d, want 503", rec.Code)
	}

	// Unknown user: lazy init, then popularity with first-seen tie order.
	rec := doRequest(t, server, http.MethodGet, "/recommend/ghost?top_n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(body.Recommendations, []string{"f1", "f2"}) || body.Count != 2 {
		t.Errorf("cold start = %+v, want [f1 f2]", body)
	}

	if rec := doRequest(t, server, http.MethodGet, "/api/v1/health/ready"); rec.Code != http.StatusOK {
		t.Errorf("ready after load = %d, want 200", rec.Code)
	}

	// Known user: never recommended an item twice, bounded by top_n.
	rec = doRequest(t, server, http.MethodGet, "/recommend/u1?top_n=3")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, id := range body.Recommendations {
		if seen[id] {
			t.Errorf("duplicate recommendation %s in %v", id, body.Recommendations)
		}
		seen[id] = true
	}
	if body.Count > 3 || body.Count != len(body.Recommendations) {
		t.Errorf("warm result = %+v", body)
	}

	// Reload with the catalog gone: 503 and the old snapshot keeps serving.
	source.Set(&recommend.Dataset{})
	if rec := doRequest(t, server, http.MethodPost, "/reload-data"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("reload on empty catalog = %d, want 503", rec.Code)
	}
	rec = doRequest(t, server, http.MethodGet, "/popular?top_n=1")
	var pop models.PopularResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pop); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pop.Recommendations, []string{"f1"}) {
		t.Errorf("popular after failed reload = %v, want [f1]", pop.Recommendations)
	}

	if _, err := engine.Reload(context.Background()); err == nil {
		t.Error("direct reload should still fail")
	}
}
