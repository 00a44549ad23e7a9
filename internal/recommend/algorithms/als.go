// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ALSConfig contains configuration for the ALS algorithm.
type ALSConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	NumFactors int

	// NumIterations is the number of alternating sweeps.
	NumIterations int

	// Regularization is the L2 penalty applied to every factor vector.
	Regularization float64

	// Alpha scales the confidence transformation c = 1 + alpha * r.
	Alpha float64

	// NumWorkers is the number of goroutines solving rows in parallel.
	// If <= 0, defaults to 4.
	NumWorkers int

	// Seed drives the factor initialization.
	Seed int64
}

// DefaultALSConfig returns default ALS configuration.
func DefaultALSConfig() ALSConfig {
	return ALSConfig{
		NumFactors:     50,
		NumIterations:  20,
		Regularization: 0.01,
		Alpha:          1.0,
		NumWorkers:     4,
		Seed:           42,
	}
}

// ALS implements Alternating Least Squares for implicit feedback.
// Reference: "Collaborative Filtering for Implicit Feedback Datasets" (Hu, Koren, Volinsky, 2008)
//
// The objective minimized is:
//
//	sum_{u,i} c_ui * (p_ui - x_u' * y_i)^2 + lambda * (||x_u||^2 + ||y_i||^2)
//
// where p_ui = 1 if user u interacted with item i, 0 otherwise, and
// c_ui = 1 + alpha * r_ui.
type ALS struct {
	BaseAlgorithm
	config ALSConfig

	// userFactors is numUsers x numFactors.
	userFactors *mat.Dense

	// itemFactors is numItems x numFactors.
	itemFactors *mat.Dense
}

// NewALS creates a new ALS algorithm with the given configuration.
func NewALS(cfg ALSConfig) *ALS {
	def := DefaultALSConfig()
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = def.NumFactors
	}
	if cfg.NumIterations <= 0 {
		cfg.NumIterations = def.NumIterations
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}

	return &ALS{
		BaseAlgorithm: NewBaseAlgorithm("als"),
		config:        cfg,
	}
}

// Config returns the effective configuration.
func (a *ALS) Config() ALSConfig {
	return a.config
}

// Fit trains user and item factors on a users x items matrix of implicit
// interaction strengths. Cancellation is checked between half-sweeps.
func (a *ALS) Fit(ctx context.Context, m *SparseMatrix) error {
	if m == nil {
		return errors.New("als: nil interaction matrix")
	}

	a.acquireTrainLock()
	defer a.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	numUsers, numItems, k := m.Rows(), m.Cols(), a.config.NumFactors
	if numUsers == 0 || numItems == 0 {
		a.userFactors, a.itemFactors = nil, nil
		a.markTrained()
		return nil
	}

	rng := rand.New(rand.NewSource(a.config.Seed)) //nolint:gosec // reproducible initialization, not security sensitive
	users := mat.NewDense(numUsers, k, nil)
	items := mat.NewDense(numItems, k, nil)
	for u := 0; u < numUsers; u++ {
		for f := 0; f < k; f++ {
			users.Set(u, f, rng.Float64()*0.01)
		}
	}
	for i := 0; i < numItems; i++ {
		for f := 0; f < k; f++ {
			items.Set(i, f, rng.Float64()*0.01)
		}
	}

	byItem := m.Transpose()

	for iter := 0; iter < a.config.NumIterations; iter++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		a.solveSide(users, items, m)

		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		a.solveSide(items, users, byItem)
	}

	a.userFactors, a.itemFactors = users, items
	a.markTrained()
	return nil
}

// solveSide recomputes every row of target holding fixed constant. Row r of
// target is paired with row r of rows, whose columns index into fixed.
func (a *ALS) solveSide(target, fixed *mat.Dense, rows *SparseMatrix) {
	_, k := fixed.Dims()

	// gram = fixed' * fixed
	gram := mat.NewSymDense(k, nil)
	gram.SymOuterK(1, fixed.T())

	n := rows.Rows()
	workers := a.config.NumWorkers
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(rStart, rEnd int) {
			defer wg.Done()
			for r := rStart; r < rEnd; r++ {
				a.solveRow(target, fixed, gram, rows, r)
			}
		}(start, end)
	}
	wg.Wait()
}

// solveRow solves (F'C F + lambda I) x = F'C p for a single row.
//
//nolint:gocritic // F, C follow standard linear algebra notation
func (a *ALS) solveRow(target, fixed *mat.Dense, gram *mat.SymDense, rows *SparseMatrix, r int) {
	_, k := fixed.Dims()
	cols, vals := rows.Row(r)

	x := make([]float64, k)
	if len(cols) == 0 {
		target.SetRow(r, x)
		return
	}

	lhs := mat.NewSymDense(k, nil)
	lhs.CopySym(gram)
	for f := 0; f < k; f++ {
		lhs.SetSym(f, f, lhs.At(f, f)+a.config.Regularization)
	}

	rhs := mat.NewVecDense(k, nil)
	for j, c := range cols {
		conf := 1 + a.config.Alpha*vals[j]
		y := fixed.RowView(c)
		lhs.SymRankOne(lhs, conf-1, y)
		rhs.AddScaledVec(rhs, conf, y)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(lhs); !ok {
		target.SetRow(r, x)
		return
	}

	sol := mat.NewVecDense(k, x)
	if err := chol.SolveVecTo(sol, rhs); err != nil {
		for f := range x {
			x[f] = 0
		}
	}
	target.SetRow(r, x)
}

// score must be called with the predict lock held and u, i in range.
func (a *ALS) score(u, i int) float64 {
	return mat.Dot(a.userFactors.RowView(u), a.itemFactors.RowView(i))
}

// Recommend returns up to topN item indices for userIdx ranked by predicted
// affinity, skipping the indices in exclude. Ties go to the lower index.
// An untrained model or an out-of-range user yields an empty slice.
func (a *ALS) Recommend(userIdx int, exclude []int, topN int) []int {
	a.acquirePredictLock()
	defer a.releasePredictLock()

	if topN <= 0 || !a.inRange(userIdx, 0) {
		return []int{}
	}

	skip := make(map[int]struct{}, len(exclude))
	for _, i := range exclude {
		skip[i] = struct{}{}
	}

	numItems, _ := a.itemFactors.Dims()
	candidates := make([]scored, 0, numItems)
	for i := 0; i < numItems; i++ {
		if _, ok := skip[i]; ok {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: a.score(userIdx, i)})
	}

	return rankTopN(candidates, topN)
}

// inRange must be called with the predict lock held.
func (a *ALS) inRange(u, i int) bool {
	if !a.trained || a.userFactors == nil || a.itemFactors == nil {
		return false
	}
	numUsers, _ := a.userFactors.Dims()
	numItems, _ := a.itemFactors.Dims()
	return u >= 0 && u < numUsers && i >= 0 && i < numItems
}
