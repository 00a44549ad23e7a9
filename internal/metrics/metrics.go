// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Snapshot Reload Metrics
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_reloads_total",
			Help: "Total number of snapshot reload attempts",
		},
		[]string{"result"}, // success, unavailable, aborted, in_progress, error
	)

	ReloadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_reload_duration_seconds",
			Help:    "Duration of snapshot reloads in seconds (load, index and model fit)",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"result"},
	)

	ReloadLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_reload_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot reload",
		},
	)

	// Snapshot Metrics
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_version",
			Help: "Version of the live snapshot",
		},
	)

	SnapshotFoods = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_foods",
			Help: "Number of catalog foods in the live snapshot",
		},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_users",
			Help: "Number of users with interactions in the live snapshot",
		},
	)

	SnapshotInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_interactions",
			Help: "Number of interactions in the live snapshot",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_results_total",
			Help: "Total number of result lists served, by branch, including result cache hits",
		},
		[]string{"branch"}, // cold, warm, similar, popular
	)

	// Result Cache Metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_lookups_total",
			Help: "Total number of result cache lookups by tier and outcome",
		},
		[]string{"tier", "result"}, // result: hit, miss
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordReload records a reload attempt.
func RecordReload(result string, duration time.Duration) {
	ReloadsTotal.WithLabelValues(result).Inc()
	if result == "in_progress" {
		return
	}
	ReloadDuration.WithLabelValues(result).Observe(duration.Seconds())
	if result == "success" {
		ReloadLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordSnapshot sets the live snapshot gauges.
func RecordSnapshot(version uint64, foods, users, interactions int) {
	SnapshotVersion.Set(float64(version))
	SnapshotFoods.Set(float64(foods))
	SnapshotUsers.Set(float64(users))
	SnapshotInteractions.Set(float64(interactions))
}

// RecordCacheLookup records a result cache lookup on one tier.
func RecordCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(tier, result).Inc()
}

// RecordBreakerTransition records a circuit breaker state change.
func RecordBreakerTransition(name string, from, to gobreaker.State) {
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Recorder adapts the package-level collectors to the observer interfaces
// of the engine and the result cache.
type Recorder struct{}

// ObserveReload implements recommend.Observer.
func (Recorder) ObserveReload(result string, duration time.Duration) {
	RecordReload(result, duration)
}

// ObserveSnapshot implements recommend.Observer.
func (Recorder) ObserveSnapshot(version uint64, foods, users, interactions int) {
	RecordSnapshot(version, foods, users, interactions)
}

// ObserveRecommendation implements recommend.Observer and cache.ResultObserver.
func (Recorder) ObserveRecommendation(branch string) {
	RecommendationsTotal.WithLabelValues(branch).Inc()
}

// ObserveCacheLookup implements cache.Observer.
func (Recorder) ObserveCacheLookup(tier string, hit bool) {
	RecordCacheLookup(tier, hit)
}
