// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed by the API at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Reload Metrics:
  - recommend_reloads_total: Reload attempts (counter)
    Labels: result (success, unavailable, in_progress, error)
  - recommend_reload_duration_seconds: Load plus build time (histogram)
  - recommend_reload_last_success_timestamp: Unix time of last good reload (gauge)

Snapshot Metrics:
  - recommend_snapshot_version, recommend_snapshot_foods,
    recommend_snapshot_users, recommend_snapshot_interactions (gauges)

Recommendation Metrics:
  - recommend_results_total: Computed lists (counter)
    Labels: branch (cold, warm, similar, popular)
  - result_cache_lookups_total: Cache lookups (counter)
    Labels: tier (memory, redis), result (hit, miss)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

# Wiring

Recorder satisfies both recommend.Observer and cache.Observer, so the engine
and the result cache report through it without importing this package:

	engine, err := recommend.NewEngine(cfg, source, logger,
	    recommend.WithObserver(metrics.Recorder{}))

HTTP metrics are recorded by middleware.PrometheusMetrics.
*/
package metrics
