// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package api provides the HTTP layer of the recommendation service.

Routes:

	GET  /                         service status
	GET  /recommend/{user_id}      hybrid recommendations (?top_n=10)
	GET  /similar/{food_id}        content neighbours (?top_n=10)
	GET  /popular                  popularity ranking (?top_n=10)
	POST /reload-data              rebuild the snapshot from the data source
	GET  /api/v1/health/live       liveness probe
	GET  /api/v1/health/ready      readiness probe (503 until the first snapshot)
	GET  /metrics                  Prometheus exposition

The recommendation routes return flat JSON bodies, for example:

	{"user_id": "u42", "recommendations": ["f3", "f9"], "count": 2}

Errors always use the models.APIResponse envelope:

	400 VALIDATION_ERROR    blank id or top_n outside [1, max_top_n]
	409 RELOAD_IN_PROGRESS  another reload holds the engine
	503 DATA_UNAVAILABLE    data source unreachable or catalog empty
	500 INTERNAL_ERROR      anything else; the cause is logged, not returned

Middleware stack (outermost first): request ID with logging context, real IP,
panic recovery, trailing-slash stripping, CORS (go-chi/cors), gzip, then per
group rate limiting (go-chi/httprate), security headers and Prometheus
instrumentation.
*/
package api
