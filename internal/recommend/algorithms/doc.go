// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

// Package algorithms implements the models behind the hybrid food recommender.
//
// The package has no dependency on the engine that composes it. Everything is
// expressed in dense indices or plain string identifiers so that a model can be
// built, tested and benchmarked in isolation.
//
// # Models
//
// Collaborative Filtering:
//   - ALS: implicit-feedback Alternating Least Squares over a SparseMatrix
//
// Content-Based Filtering:
//   - ContentIndex: TF-IDF vectors over food text with a precomputed cosine matrix
//
// Baselines:
//   - Popularity: interaction-count ranking used for cold-start users
//
// # Interaction Matrix
//
// SparseMatrix is a compressed sparse row matrix of users by foods. Duplicate
// (row, col) entries are summed on construction and columns within a row are kept
// sorted, so iteration order is deterministic:
//
//	m, err := algorithms.NewSparseMatrix(numUsers, numFoods, entries)
//	if err != nil {
//	    return err
//	}
//	als := algorithms.NewALS(algorithms.DefaultALSConfig())
//	if err := als.Fit(ctx, m.Scale(10)); err != nil {
//	    return err
//	}
//	top := als.Recommend(userIdx, m.RowIndices(userIdx), 10)
//
// # Determinism
//
// Given the same input, every model in this package produces the same output.
// ALS seeds its factor initialization from the configured Seed, and all rankings
// break score ties by the lower index (catalog or first-seen order).
//
// # Thread Safety
//
// Models are trained once and then only read. ContentIndex and Popularity are
// immutable after construction. ALS guards its factors with a RWMutex so that
// Recommend may be called concurrently, including while a Fit is in progress on
// the same instance.
package algorithms
