// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

// Package recommend implements the hybrid food recommendation engine.
//
// # Architecture
//
// The engine blends two signals and a fallback:
//
//   - Collaborative Filtering: implicit-feedback ALS over the user x food order matrix
//   - Content-Based Filtering: TF-IDF cosine similarity over food name, description and category
//   - Popularity: interaction-count ranking for users with no history
//
// All derived structures are built together from one Dataset into an immutable
// Snapshot. The Engine publishes the current Snapshot through an atomic pointer,
// so request handling never takes a lock and never observes a half-built model.
//
// # Snapshot Lifecycle
//
// An Engine starts Uninitialized. The first call to Recommend, SimilarItems or
// Popular (or an explicit Reload) loads the Dataset from the DataSource and
// builds the first Snapshot. Later reloads build a complete replacement and
// swap it in; if loading or building fails, the previous Snapshot stays live.
//
// # Hybrid Merge
//
// For a user with history the result is:
//
//	cf[:n/2] ++ content(most recent food, n)   deduplicated, truncated to n
//
// For a user without history it is the n most popular foods.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), source, logger)
//	if err != nil {
//	    return err
//	}
//	res, err := engine.Recommend(ctx, "user-42", 10)
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Reloads are serialized; a Reload
// issued while another is running fails fast with ErrReloadInProgress.
package recommend
