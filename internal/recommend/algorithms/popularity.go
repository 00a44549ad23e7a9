// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"sort"
)

// Popularity ranks items by how many interaction records reference them.
// It is the fallback for users with no history.
//
// Records are counted, not weighted, so a single order line with a large
// interaction value counts the same as any other. Items with equal counts keep
// the order in which they were first seen.
type Popularity struct {
	counts map[string]int
	ranked []string
}

// NewPopularity builds a ranking from the item id of every interaction
// record, in input order.
func NewPopularity(itemIDs []string) *Popularity {
	p := &Popularity{
		counts: make(map[string]int),
	}

	for _, id := range itemIDs {
		if _, seen := p.counts[id]; !seen {
			p.ranked = append(p.ranked, id)
		}
		p.counts[id]++
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(p.ranked, func(i, j int) bool {
		return p.counts[p.ranked[i]] > p.counts[p.ranked[j]]
	})

	return p
}

// Top returns at most n item ids, most popular first. n <= 0 yields an empty slice.
func (p *Popularity) Top(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(p.ranked) {
		n = len(p.ranked)
	}
	out := make([]string, n)
	copy(out, p.ranked[:n])
	return out
}

// Count returns the number of records for id.
func (p *Popularity) Count(id string) int {
	return p.counts[id]
}

// Len returns the number of distinct items.
func (p *Popularity) Len() int {
	return len(p.ranked)
}
