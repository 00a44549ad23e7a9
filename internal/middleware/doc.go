// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package middleware provides HTTP middleware components for the service.

Key Components:

  - RequestID: UUID-based request tracking. Accepts a sane upstream
    X-Request-ID, otherwise generates one, and seeds the logging context with
    request and correlation IDs.
  - PrometheusMetrics: request count, latency and in-flight instrumentation
    labelled by chi route pattern.

Both use the http.HandlerFunc signature; the api package adapts them to chi's
func(http.Handler) http.Handler with chiMiddleware:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Compression, panic recovery and real-IP extraction come from
github.com/go-chi/chi/v5/middleware.
*/
package middleware
