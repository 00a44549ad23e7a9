// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/foodrec/internal/recommend/algorithms"
)

// Snapshot bundles every structure derived from one Dataset. It is never
// modified after BuildSnapshot returns.
type Snapshot struct {
	Version       uint64
	BuiltAt       time.Time
	BuildDuration time.Duration

	Dataset       *Dataset
	Index         *IdentifierIndex
	Content       *algorithms.ContentIndex
	Collaborative *CollaborativeModel
	Popularity    *algorithms.Popularity

	history map[string][]Interaction
}

// BuildSnapshot derives a complete Snapshot from ds. A dataset without foods
// is rejected with ErrDataUnavailable.
func BuildSnapshot(ctx context.Context, ds *Dataset, cfg *Config, model Factorizer, version uint64) (*Snapshot, error) {
	if ds == nil || len(ds.Foods) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrDataUnavailable)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	start := time.Now()

	docs := make([]algorithms.ContentDocument, len(ds.Foods))
	for i, f := range ds.Foods {
		docs[i] = algorithms.ContentDocument{ID: f.ID, Text: f.Text(cfg.Content.IncludeCategory)}
	}
	content := algorithms.NewContentIndex(docs, cfg.algorithmsContent(), algorithms.NewTokenizer(cfg.Content.Stem))

	if algorithms.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	index := NewIdentifierIndex(ds.Interactions)
	collab, err := NewCollaborativeModel(ctx, index, ds.Interactions, cfg.ALS.InteractionScale, model)
	if err != nil {
		return nil, err
	}

	history := make(map[string][]Interaction, index.NumUsers())
	for _, in := range ds.Interactions {
		history[in.UserID] = append(history[in.UserID], in)
	}

	now := time.Now()
	return &Snapshot{
		Version:       version,
		BuiltAt:       now,
		BuildDuration: now.Sub(start),
		Dataset:       ds,
		Index:         index,
		Content:       content,
		Collaborative: collab,
		Popularity:    algorithms.NewPopularity(ds.FoodIDs()),
		history:       history,
	}, nil
}

// History returns the interactions of userID in input order. The slice must
// not be modified.
func (s *Snapshot) History(userID string) []Interaction {
	return s.history[userID]
}

// Recommend runs the hybrid scorer for userID.
func (s *Snapshot) Recommend(userID string, n int) *Result {
	res := &Result{Subject: userID, SnapshotVersion: s.Version}

	history := s.History(userID)
	if len(history) == 0 {
		res.Branch = BranchCold
		res.Items = s.Popularity.Top(n)
		return res
	}

	res.Branch = BranchWarm
	if n <= 0 {
		res.Items = []string{}
		return res
	}

	cf := s.Collaborative.Recommend(userID, n)

	var cb []string
	if seed, ok := MostRecent(history); ok {
		cb = s.Content.SimilarItems(seed.FoodID, n)
	}

	res.Items = Interleave(cf, cb, n)
	return res
}

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() SnapshotStats {
	return SnapshotStats{
		Version:          s.Version,
		Foods:            s.Content.Len(),
		Users:            s.Index.NumUsers(),
		InteractionFoods: s.Index.NumFoods(),
		Interactions:     len(s.Dataset.Interactions),
		MatrixEntries:    s.Collaborative.Matrix().NNZ(),
		VocabularySize:   s.Content.VocabularySize(),
		BuiltAt:          s.BuiltAt,
		BuildDurationMS:  s.BuildDuration.Milliseconds(),
	}
}
