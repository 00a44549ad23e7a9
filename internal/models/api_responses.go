// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper. Every error and
// every /api/v1 endpoint uses it.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z"},
//	  "error": {
//	    "code": "DATA_UNAVAILABLE",
//	    "message": "Recommendation data is unavailable"
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id,omitempty"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	SnapshotVersion uint64    `json:"snapshot_version,omitempty"`
}

// APIError represents an error response with structured details.
//
// Error codes:
//   - VALIDATION_ERROR: Invalid input parameters (400)
//   - RELOAD_IN_PROGRESS: Another reload is running (409)
//   - DATA_UNAVAILABLE: Backing store unreachable or catalog empty (503)
//   - INTERNAL_ERROR: Any other failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used by the API.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeDataUnavailable  = "DATA_UNAVAILABLE"
	ErrCodeReloadInProgress = "RELOAD_IN_PROGRESS"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
)
