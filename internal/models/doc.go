// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package models defines the HTTP request and response structures of the
recommendation service.

Two response styles coexist:

  - The recommendation routes (/recommend, /similar, /popular, /reload-data and
    the root health check) return flat bodies for compatibility with existing
    clients, for example {"user_id": "u1", "recommendations": [...], "count": 3}.
  - The /api/v1 routes and every error use the APIResponse envelope with
    status, data, metadata and error fields.

Request parameter structs carry validator tags and are checked with
validation.ValidateStruct before reaching the engine.
*/
package models
