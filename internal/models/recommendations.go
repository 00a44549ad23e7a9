// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package models

import "time"

// RecommendRequest holds the parameters of GET /recommend/{user_id}.
type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required,notblank,max=256"`
	TopN   int    `json:"top_n" validate:"min=1"`
}

// SimilarRequest holds the parameters of GET /similar/{food_id}.
type SimilarRequest struct {
	FoodID string `json:"food_id" validate:"required,notblank,max=256"`
	TopN   int    `json:"top_n" validate:"min=1"`
}

// PopularRequest holds the parameters of GET /popular.
type PopularRequest struct {
	TopN int `json:"top_n" validate:"min=1"`
}

// RecommendResponse is the body of GET /recommend/{user_id}.
//
// Example:
//
//	{"user_id": "u42", "recommendations": ["f3", "f9"], "count": 2}
type RecommendResponse struct {
	UserID          string   `json:"user_id"`
	Recommendations []string `json:"recommendations"`
	Count           int      `json:"count"`
}

// SimilarResponse is the body of GET /similar/{food_id}.
type SimilarResponse struct {
	FoodID  string   `json:"food_id"`
	Similar []string `json:"similar"`
	Count   int      `json:"count"`
}

// PopularResponse is the body of GET /popular.
type PopularResponse struct {
	Recommendations []string `json:"recommendations"`
	Count           int      `json:"count"`
}

// ReloadResponse is the body of a successful POST /reload-data.
type ReloadResponse struct {
	Message      string    `json:"message"`
	Version      uint64    `json:"version"`
	Foods        int       `json:"foods"`
	Users        int       `json:"users"`
	Interactions int       `json:"interactions"`
	BuiltAt      time.Time `json:"built_at"`
	DurationMS   int64     `json:"duration_ms"`
}

// RootStatus is the body of GET /.
type RootStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
}

// ReadinessStatus is the data of GET /api/v1/health/ready.
type ReadinessStatus struct {
	Ready           bool    `json:"ready"`
	Reloading       bool    `json:"reloading"`
	SnapshotVersion uint64  `json:"snapshot_version,omitempty"`
	Foods           int     `json:"foods"`
	Users           int     `json:"users"`
	Interactions    int     `json:"interactions"`
	LastError       string  `json:"last_error,omitempty"`
	DataSource      string  `json:"data_source"`
	BreakerState    string  `json:"breaker_state,omitempty"`
	Uptime          float64 `json:"uptime"`
}
