// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"context"
	"strings"
	"time"
)

// FoodItem is a catalog entry.
type FoodItem struct {
	// ID is the stable unique identifier from the backing store.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description may be empty.
	Description string `json:"description"`

	// Category is optional.
	Category string `json:"category,omitempty"`
}

// Text returns the document used for content similarity.
//
//nolint:gocritic // value receiver keeps FoodItem immutable
func (f FoodItem) Text(includeCategory bool) string {
	parts := []string{f.Name, f.Description}
	if includeCategory && f.Category != "" {
		parts = append(parts, f.Category)
	}
	return strings.Join(parts, " ")
}

// Interaction records that a user ordered a food.
type Interaction struct {
	UserID string `json:"user_id"`
	FoodID string `json:"food_id"`

	// Weight is the implicit feedback strength. Each ordered item counts 1.
	Weight float64 `json:"weight"`

	// Timestamp is the order date.
	Timestamp time.Time `json:"timestamp"`
}

// Dataset is everything a snapshot is built from. Interactions keep the
// order in which the data source produced them.
type Dataset struct {
	Foods        []FoodItem    `json:"foods"`
	Interactions []Interaction `json:"interactions"`

	// Users lists known user ids, including users without orders.
	Users []string `json:"users,omitempty"`
}

// FoodIDs returns the id of every interaction in input order.
func (d *Dataset) FoodIDs() []string {
	ids := make([]string, len(d.Interactions))
	for i, in := range d.Interactions {
		ids[i] = in.FoodID
	}
	return ids
}

// DataSource loads a complete Dataset from the backing store.
type DataSource interface {
	// Load returns the current dataset. An unreachable store or an empty
	// catalog is reported as an error wrapping ErrDataUnavailable.
	Load(ctx context.Context) (*Dataset, error)
}

// Branch identifies how a result list was produced.
type Branch string

const (
	// BranchCold is the popularity fallback for users without history.
	BranchCold Branch = "cold"
	// BranchWarm is the collaborative and content blend.
	BranchWarm Branch = "warm"
	// BranchSimilar is a content-similarity lookup for a food.
	BranchSimilar Branch = "similar"
	// BranchPopular is the global popularity ranking.
	BranchPopular Branch = "popular"
)

// String returns the branch name.
func (b Branch) String() string {
	return string(b)
}

// Result is a ranked list of food ids.
type Result struct {
	// Subject is the user id or food id the list was computed for. Empty
	// for popularity listings.
	Subject string `json:"subject,omitempty"`

	// Items is never nil.
	Items []string `json:"items"`

	Branch Branch `json:"branch"`

	// SnapshotVersion identifies the snapshot that served the request.
	SnapshotVersion uint64 `json:"snapshot_version"`
}

// SnapshotStats summarizes a built snapshot.
type SnapshotStats struct {
	Version          uint64    `json:"version"`
	Foods            int       `json:"foods"`
	Users            int       `json:"users"`
	InteractionFoods int       `json:"interaction_foods"`
	Interactions     int       `json:"interactions"`
	MatrixEntries    int       `json:"matrix_entries"`
	VocabularySize   int       `json:"vocabulary_size"`
	BuiltAt          time.Time `json:"built_at"`
	BuildDurationMS  int64     `json:"build_duration_ms"`
}

// Status reports the engine state.
type Status struct {
	Ready     bool           `json:"ready"`
	Reloading bool           `json:"reloading"`
	Snapshot  *SnapshotStats `json:"snapshot,omitempty"`

	// LastError is the message of the most recent failed reload, cleared on success.
	LastError string `json:"last_error,omitempty"`
}
