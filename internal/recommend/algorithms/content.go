// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"math"
	"sort"
)

// ContentDocument is one catalog entry as seen by the content index.
type ContentDocument struct {
	ID   string
	Text string
}

// ContentConfig contains configuration for the content index.
type ContentConfig struct {
	// MaxFeatures caps the vocabulary, keeping the terms with the highest
	// corpus frequency. If <= 0, defaults to 5000.
	MaxFeatures int
}

// DefaultContentConfig returns default content index configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		MaxFeatures: 5000,
	}
}

// ContentIndex holds TF-IDF vectors for a food catalog and the full pairwise
// cosine similarity matrix between them.
//
// Term weights use raw counts times the smoothed inverse document frequency:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every document vector is L2-normalized, so cosine similarity reduces to
// a dot product.
type ContentIndex struct {
	ids   []string
	pos   map[string]int
	vocab map[string]int

	// sim is a row-major len(ids) x len(ids) matrix.
	sim []float64
}

// sparseVec is a sorted sparse vector over vocabulary indices.
type sparseVec struct {
	terms   []int
	weights []float64
}

// NewContentIndex builds the index over docs in the given order. Later
// documents that repeat an earlier ID are ignored.
func NewContentIndex(docs []ContentDocument, cfg ContentConfig, tok *Tokenizer) *ContentIndex {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultContentConfig().MaxFeatures
	}
	if tok == nil {
		tok = NewTokenizer(true)
	}

	idx := &ContentIndex{
		pos:   make(map[string]int, len(docs)),
		vocab: make(map[string]int),
	}

	termCounts := make([]map[string]int, 0, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, d := range docs {
		if _, dup := idx.pos[d.ID]; dup {
			continue
		}
		idx.pos[d.ID] = len(idx.ids)
		idx.ids = append(idx.ids, d.ID)

		counts := make(map[string]int)
		for _, term := range tok.Tokens(d.Text) {
			counts[term]++
			corpusFreq[term]++
		}
		for term := range counts {
			docFreq[term]++
		}
		termCounts = append(termCounts, counts)
	}

	for i, term := range selectVocabulary(corpusFreq, cfg.MaxFeatures) {
		idx.vocab[term] = i
	}

	n := len(idx.ids)
	vectors := make([]sparseVec, n)
	for i, counts := range termCounts {
		vectors[i] = idx.vectorize(counts, docFreq, n)
	}

	idx.sim = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := dotSparse(vectors[i], vectors[j])
			idx.sim[i*n+j] = s
			idx.sim[j*n+i] = s
		}
	}

	return idx
}

// selectVocabulary returns at most maxFeatures terms ordered by corpus
// frequency descending, ties by term.
func selectVocabulary(corpusFreq map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	return terms
}

func (c *ContentIndex) vectorize(counts map[string]int, docFreq map[string]int, n int) sparseVec {
	var v sparseVec
	for term, count := range counts {
		ti, ok := c.vocab[term]
		if !ok {
			continue
		}
		idf := math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
		v.terms = append(v.terms, ti)
		v.weights = append(v.weights, float64(count)*idf)
	}

	sort.Sort(byTerm(v))

	var norm float64
	for _, w := range v.weights {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v.weights {
			v.weights[i] /= norm
		}
	}
	return v
}

type byTerm sparseVec

func (b byTerm) Len() int           { return len(b.terms) }
func (b byTerm) Less(i, j int) bool { return b.terms[i] < b.terms[j] }
func (b byTerm) Swap(i, j int) {
	b.terms[i], b.terms[j] = b.terms[j], b.terms[i]
	b.weights[i], b.weights[j] = b.weights[j], b.weights[i]
}

func dotSparse(a, b sparseVec) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] == b.terms[j]:
			sum += a.weights[i] * b.weights[j]
			i++
			j++
		case a.terms[i] < b.terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// SimilarItems returns up to topN other food ids ordered by descending
// similarity to id. The queried item is never returned. Ties keep catalog
// order. Unknown ids and topN <= 0 yield an empty slice.
func (c *ContentIndex) SimilarItems(id string, topN int) []string {
	i, ok := c.pos[id]
	if !ok || topN <= 0 {
		return []string{}
	}

	n := len(c.ids)
	candidates := make([]scored, 0, n-1)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		candidates = append(candidates, scored{idx: j, score: c.at(i, j)})
	}

	ranked := rankTopN(candidates, topN)
	out := make([]string, len(ranked))
	for k, j := range ranked {
		out[k] = c.ids[j]
	}
	return out
}

// at returns the cosine similarity of the foods at catalog positions i and j.
func (c *ContentIndex) at(i, j int) float64 {
	return c.sim[i*len(c.ids)+j]
}

// Len returns the number of indexed foods.
func (c *ContentIndex) Len() int {
	return len(c.ids)
}

// VocabularySize returns the number of terms kept after the MaxFeatures cap.
func (c *ContentIndex) VocabularySize() int {
	return len(c.vocab)
}
