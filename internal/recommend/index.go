// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"github.com/tomtom215/foodrec/internal/recommend/algorithms"
)

// IdentifierIndex maps external user and food ids to dense matrix indices.
// Indices are assigned in the order ids first appear in the interaction list,
// so the same input always yields the same mapping.
type IdentifierIndex struct {
	users   map[string]int
	foods   map[string]int
	userIDs []string
	foodIDs []string
}

// NewIdentifierIndex assigns dense indices to every user and food in interactions.
func NewIdentifierIndex(interactions []Interaction) *IdentifierIndex {
	x := &IdentifierIndex{
		users: make(map[string]int),
		foods: make(map[string]int),
	}
	for _, in := range interactions {
		if _, ok := x.users[in.UserID]; !ok {
			x.users[in.UserID] = len(x.userIDs)
			x.userIDs = append(x.userIDs, in.UserID)
		}
		if _, ok := x.foods[in.FoodID]; !ok {
			x.foods[in.FoodID] = len(x.foodIDs)
			x.foodIDs = append(x.foodIDs, in.FoodID)
		}
	}
	return x
}

// UserIndex returns the dense index of userID.
func (x *IdentifierIndex) UserIndex(userID string) (int, bool) {
	i, ok := x.users[userID]
	return i, ok
}

// FoodIndex returns the dense index of foodID.
func (x *IdentifierIndex) FoodIndex(foodID string) (int, bool) {
	i, ok := x.foods[foodID]
	return i, ok
}

// FoodID returns the food id at dense index i.
func (x *IdentifierIndex) FoodID(i int) (string, bool) {
	if i < 0 || i >= len(x.foodIDs) {
		return "", false
	}
	return x.foodIDs[i], true
}

// NumUsers returns the number of indexed users.
func (x *IdentifierIndex) NumUsers() int { return len(x.userIDs) }

// NumFoods returns the number of indexed foods.
func (x *IdentifierIndex) NumFoods() int { return len(x.foodIDs) }

// FoodIDs returns food ids in index order.
func (x *IdentifierIndex) FoodIDs() []string {
	return append([]string(nil), x.foodIDs...)
}

// Matrix builds the users x foods interaction matrix. Repeated
// (user, food) pairs are summed.
func (x *IdentifierIndex) Matrix(interactions []Interaction) (*algorithms.SparseMatrix, error) {
	entries := make([]algorithms.Entry, 0, len(interactions))
	for _, in := range interactions {
		u, ok := x.users[in.UserID]
		if !ok {
			continue
		}
		f, ok := x.foods[in.FoodID]
		if !ok {
			continue
		}
		entries = append(entries, algorithms.Entry{Row: u, Col: f, Value: in.Weight})
	}
	return algorithms.NewSparseMatrix(len(x.userIDs), len(x.foodIDs), entries)
}
