// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodrec/internal/models"
	"github.com/tomtom215/foodrec/internal/recommend"
)

// fakeService implements Recommender and Controller.
type fakeService struct {
	mu       sync.Mutex
	items    []string
	err      error
	lastID   string
	lastTopN int
	calls    int

	reloadStats *recommend.SnapshotStats
	reloadErr   error
	status      recommend.Status
}

func (f *fakeService) record(id string, n int) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastID, f.lastTopN = id, n
	if f.err != nil {
		return nil, f.err
	}
	out := f.items
	if len(out) > n {
		out = out[:n]
	}
	return &recommend.Result{Subject: id, Items: out, Branch: recommend.BranchWarm, SnapshotVersion: 1}, nil
}

func (f *fakeService) Recommend(_ context.Context, userID string, topN int) (*recommend.Result, error) {
	return f.record(userID, topN)
}

func (f *fakeService) SimilarItems(_ context.Context, foodID string, topN int) (*recommend.Result, error) {
	return f.record(foodID, topN)
}

func (f *fakeService) Popular(_ context.Context, topN int) (*recommend.Result, error) {
	return f.record("", topN)
}

func (f *fakeService) Reload(context.Context) (*recommend.SnapshotStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reloadErr != nil {
		return nil, f.reloadErr
	}
	return f.reloadStats, nil
}

func (f *fakeService) Status() recommend.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLimits() recommend.LimitsConfig {
	return recommend.LimitsConfig{DefaultTopN: 10, MaxTopN: 100}
}

// newTestServer wires a fake service behind the full router with rate
// limiting disabled.
func newTestServer(t *testing.T, svc *fakeService) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	h := NewHandler(svc, svc, testLimits(), ServiceInfo{Version: "test", DataSource: "static"})
	return NewRouter(h, NewChiMiddleware(cfg)).SetupChi()
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return resp
}

func TestRecommend_Success(t *testing.T) {
	t.Parallel()

	svc := &fakeService{items: []string{"f3", "f1", "f7"}}
	server := newTestServer(t, svc)

	rec := doRequest(t, server, http.MethodGet, "/recommend/u42?top_n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != "u42" || body.Count != 2 || !slices.Equal(body.Recommendations, []string{"f3", "f1"}) {
		t.Errorf("body = %+v", body)
	}
	if svc.lastID != "u42" || svc.lastTopN != 2 {
		t.Errorf("engine called with (%q, %d)", svc.lastID, svc.lastTopN)
	}
}

func TestRecommend_ResponseShape(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &fakeService{})
	rec := doRequest(t, server, http.MethodGet, "/recommend/nobody")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"user_id":"nobody","recommendations":[],"count":0}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestRecommend_DefaultTopN(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	server := newTestServer(t, svc)
	doRequest(t, server, http.MethodGet, "/recommend/u1")

	if svc.lastTopN != 10 {
		t.Errorf("top_n = %d, want default 10", svc.lastTopN)
	}
}

func TestRecommend_EscapedUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"encoded slash", "/recommend/user%2F7%20b", "user/7 b"},
		{"encoded percent", "/recommend/50%25off", "50%off"},
		{"percent and slash", "/recommend/a%2F100%25", "a/100%"},
		{"utf-8", "/recommend/caf%C3%A9", "café"},
		{"plain", "/recommend/u-1", "u-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeService{}
			server := newTestServer(t, svc)
			rec := doRequest(t, server, http.MethodGet, tt.target)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if svc.lastID != tt.want {
				t.Errorf("user id = %q, want %q", svc.lastID, tt.want)
			}
		})
	}
}

func TestSimilar_EncodedPercentFoodID(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	server := newTestServer(t, svc)
	rec := doRequest(t, server, http.MethodGet, "/similar/100%25%20beef")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != "100% beef" {
		t.Errorf("food id = %q, want %q", svc.lastID, "100% beef")
	}
}

func TestRecommend_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
	}{
		{"blank user", "/recommend/%20%20"},
		{"tab user", "/recommend/%09"},
		{"missing user", "/recommend/"},
		{"missing user no slash", "/recommend"},
		{"non-integer top_n", "/recommend/u1?top_n=abc"},
		{"zero top_n", "/recommend/u1?top_n=0"},
		{"negative top_n", "/recommend/u1?top_n=-3"},
		{"top_n above max", "/recommend/u1?top_n=101"},
		{"float top_n", "/recommend/u1?top_n=2.5"},
		{"oversized user", "/recommend/" + strings.Repeat("x", 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeService{}
			server := newTestServer(t, svc)
			rec := doRequest(t, server, http.MethodGet, tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			resp := decodeEnvelope(t, rec)
			if resp.Status != "error" || resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
				t.Errorf("envelope = %+v", resp)
			}
			if svc.Calls() != 0 {
				t.Error("engine must not be called for invalid input")
			}
		})
	}
}

func TestRecommend_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"data unavailable", fmt.Errorf("load: %w", recommend.ErrDataUnavailable), http.StatusServiceUnavailable, models.ErrCodeDataUnavailable},
		{"reload in progress", recommend.ErrReloadInProgress, http.StatusConflict, models.ErrCodeReloadInProgress},
		{"other", errors.New("mongo: secret connection string leaked"), http.StatusInternalServerError, models.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, &fakeService{err: tt.err})
			rec := doRequest(t, server, http.MethodGet, "/recommend/u1")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
			if strings.Contains(rec.Body.String(), "secret") {
				t.Error("internal error detail leaked to the client")
			}
		})
	}
}

func TestSimilarAndPopular(t *testing.T) {
	t.Parallel()

	svc := &fakeService{items: []string{"a", "b", "c"}}
	server := newTestServer(t, svc)

	rec := doRequest(t, server, http.MethodGet, "/similar/pizza?top_n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("similar status = %d", rec.Code)
	}
	var sim models.SimilarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sim); err != nil {
		t.Fatal(err)
	}
	if sim.FoodID != "pizza" || sim.Count != 2 || !slices.Equal(sim.Similar, []string{"a", "b"}) {
		t.Errorf("similar = %+v", sim)
	}

	rec = doRequest(t, server, http.MethodGet, "/popular")
	if rec.Code != http.StatusOK {
		t.Fatalf("popular status = %d", rec.Code)
	}
	var pop models.PopularResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pop); err != nil {
		t.Fatal(err)
	}
	if pop.Count != 3 || !slices.Equal(pop.Recommendations, []string{"a", "b", "c"}) {
		t.Errorf("popular = %+v", pop)
	}

	rec = doRequest(t, server, http.MethodGet, "/similar/%20")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank food status = %d, want 400", rec.Code)
	}
}

func TestReload(t *testing.T) {
	t.Parallel()

	built := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		svc        *fakeService
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			svc: &fakeService{reloadStats: &recommend.SnapshotStats{
				Version: 3, Foods: 40, Users: 12, Interactions: 250, BuiltAt: built, BuildDurationMS: 87,
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unavailable",
			svc:        &fakeService{reloadErr: fmt.Errorf("ping: %w", recommend.ErrDataUnavailable)},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   models.ErrCodeDataUnavailable,
		},
		{
			name:       "in progress",
			svc:        &fakeService{reloadErr: recommend.ErrReloadInProgress},
			wantStatus: http.StatusConflict,
			wantCode:   models.ErrCodeReloadInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, newTestServer(t, tt.svc), http.MethodPost, "/reload-data")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantCode != "" {
				if resp := decodeEnvelope(t, rec); resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v", resp.Error)
				}
				return
			}

			var body models.ReloadResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Version != 3 || body.Foods != 40 || body.Users != 12 || body.Interactions != 250 ||
				body.DurationMS != 87 || !body.BuiltAt.Equal(built) {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestReload_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t, &fakeService{}), http.MethodGet, "/reload-data")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Error == nil || resp.Error.Code != models.ErrCodeMethodNotAllowed {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	svc := &fakeService{status: recommend.Status{Ready: true}}
	rec := doRequest(t, newTestServer(t, svc), http.MethodGet, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body models.RootStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || !body.Ready || body.Version != "test" {
		t.Errorf("body = %+v", body)
	}
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestServer(t, &fakeService{}), http.MethodGet, "/api/v1/health/live")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if resp := decodeEnvelope(t, rec); resp.Status != "success" || resp.Metadata.RequestID == "" {
			t.Errorf("envelope = %+v", resp)
		}
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{status: recommend.Status{LastError: "data unavailable"}}
		rec := doRequest(t, newTestServer(t, svc), http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		if resp := decodeEnvelope(t, rec); resp.Status != "not_ready" {
			t.Errorf("status = %q", resp.Status)
		}
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()
		svc := &fakeService{status: recommend.Status{
			Ready:    true,
			Snapshot: &recommend.SnapshotStats{Version: 2, Foods: 5, Users: 3, Interactions: 9},
		}}
		h := NewHandler(svc, svc, testLimits(), ServiceInfo{
			DataSource:   "mongo",
			BreakerState: func() string { return "closed" },
		})
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp struct {
			Status string                 `json:"status"`
			Data   models.ReadinessStatus `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		d := resp.Data
		if resp.Status != "ready" || d.SnapshotVersion != 2 || d.Foods != 5 || d.BreakerState != "closed" || d.DataSource != "mongo" {
			t.Errorf("readiness = %+v", resp)
		}
	})
}

func TestNewHandler_DefaultVersion(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeService{}, &fakeService{}, testLimits(), ServiceInfo{})
	if h.info.Version != "dev" {
		t.Errorf("Version = %q, want dev", h.info.Version)
	}
}
