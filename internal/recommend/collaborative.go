// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/foodrec/internal/recommend/algorithms"
)

// Factorizer is a matrix factorization model for implicit feedback.
type Factorizer interface {
	// Fit trains the model on a users x foods matrix.
	Fit(ctx context.Context, matrix *algorithms.SparseMatrix) error

	// Recommend returns up to topN food indices for userIdx, best first,
	// skipping the indices in exclude.
	Recommend(userIdx int, exclude []int, topN int) []int
}

// FactorizerFactory returns a fresh, unfitted Factorizer for each build.
type FactorizerFactory func() Factorizer

// CollaborativeModel is a fitted Factorizer bound to the IdentifierIndex and
// interaction matrix it was trained on.
type CollaborativeModel struct {
	index  *IdentifierIndex
	matrix *algorithms.SparseMatrix
	model  Factorizer
}

// NewCollaborativeModel builds the interaction matrix from index, scales it
// and fits model on it.
func NewCollaborativeModel(ctx context.Context, index *IdentifierIndex, interactions []Interaction, scale float64, model Factorizer) (*CollaborativeModel, error) {
	matrix, err := index.Matrix(interactions)
	if err != nil {
		return nil, fmt.Errorf("build interaction matrix: %w", err)
	}

	if err := model.Fit(ctx, matrix.Scale(scale)); err != nil {
		return nil, fmt.Errorf("fit collaborative model: %w", err)
	}

	return &CollaborativeModel{
		index:  index,
		matrix: matrix,
		model:  model,
	}, nil
}

// Recommend returns up to topN food ids for userID, excluding foods the
// user already ordered. Unknown users get an empty slice.
func (c *CollaborativeModel) Recommend(userID string, topN int) []string {
	u, ok := c.index.UserIndex(userID)
	if !ok || topN <= 0 {
		return []string{}
	}

	ranked := c.model.Recommend(u, c.matrix.RowIndices(u), topN)

	out := make([]string, 0, len(ranked))
	for _, i := range ranked {
		if id, ok := c.index.FoodID(i); ok {
			out = append(out, id)
		}
		if len(out) == topN {
			break
		}
	}
	return out
}

// Matrix returns the unscaled interaction matrix.
func (c *CollaborativeModel) Matrix() *algorithms.SparseMatrix {
	return c.matrix
}
