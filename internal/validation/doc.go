// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP layer, which validates
// path and query parameters, and by the data sources, which validate records
// read from MongoDB or CSV before they enter a snapshot.
//
// Besides the built-in tags, the non-standard notblank tag is registered so
// that whitespace-only identifiers are rejected:
//
//	type recommendParams struct {
//	    UserID string `json:"user_id" validate:"required,notblank,max=256"`
//	    TopN   int    `json:"top_n" validate:"min=1,max=100"`
//	}
//
// Field names in errors use the json tag when present, so messages match the
// names clients send.
package validation
