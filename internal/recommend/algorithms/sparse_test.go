// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSparseMatrix(t *testing.T) {
	t.Parallel()

	m, err := NewSparseMatrix(2, 3, []Entry{
		{Row: 0, Col: 2, Value: 1},
		{Row: 0, Col: 0, Value: 1},
		{Row: 1, Col: 1, Value: 2},
		{Row: 0, Col: 2, Value: 1},
	})
	if err != nil {
		t.Fatalf("NewSparseMatrix() error = %v", err)
	}

	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("dims = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if m.NNZ() != 3 {
		t.Errorf("NNZ() = %d, want 3", m.NNZ())
	}
	if got := m.At(0, 2); got != 2 {
		t.Errorf("At(0,2) = %f, want 2 (duplicates summed)", got)
	}
	if got := m.At(1, 0); got != 0 {
		t.Errorf("At(1,0) = %f, want 0", got)
	}

	cols, vals := m.Row(0)
	if !reflect.DeepEqual(cols, []int{0, 2}) {
		t.Errorf("Row(0) cols = %v, want [0 2]", cols)
	}
	if !reflect.DeepEqual(vals, []float64{1, 2}) {
		t.Errorf("Row(0) vals = %v, want [1 2]", vals)
	}
	if cols, _ := m.Row(7); cols != nil {
		t.Errorf("Row(7) = %v, want nil", cols)
	}
}

func TestNewSparseMatrix_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    int
		cols    int
		entries []Entry
	}{
		{"negative rows", -1, 2, nil},
		{"row out of range", 1, 1, []Entry{{Row: 1, Col: 0, Value: 1}}},
		{"col out of range", 1, 1, []Entry{{Row: 0, Col: 3, Value: 1}}},
		{"negative col", 1, 1, []Entry{{Row: 0, Col: -1, Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSparseMatrix(tt.rows, tt.cols, tt.entries)
			if !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("error = %v, want ErrInvalidMatrix", err)
			}
		})
	}
}

func TestSparseMatrix_ScaleAndTranspose(t *testing.T) {
	t.Parallel()

	m, err := NewSparseMatrix(2, 3, []Entry{
		{Row: 0, Col: 1, Value: 1},
		{Row: 1, Col: 1, Value: 3},
		{Row: 1, Col: 2, Value: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	scaled := m.Scale(10)
	if got := scaled.At(1, 1); got != 30 {
		t.Errorf("scaled At(1,1) = %f, want 30", got)
	}
	if got := m.At(1, 1); got != 3 {
		t.Errorf("Scale modified the source: At(1,1) = %f", got)
	}

	tr := m.Transpose()
	if tr.Rows() != 3 || tr.Cols() != 2 {
		t.Fatalf("transpose dims = %dx%d, want 3x2", tr.Rows(), tr.Cols())
	}
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if m.At(r, c) != tr.At(c, r) {
				t.Errorf("At(%d,%d)=%f but transpose At(%d,%d)=%f", r, c, m.At(r, c), c, r, tr.At(c, r))
			}
		}
	}
	if got := tr.RowIndices(1); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("transpose RowIndices(1) = %v, want [0 1]", got)
	}
}
