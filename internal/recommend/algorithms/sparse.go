// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidMatrix is returned when matrix dimensions or entries are out of range.
var ErrInvalidMatrix = errors.New("invalid sparse matrix")

// Entry is a single (row, col, value) triple used to build a SparseMatrix.
type Entry struct {
	Row   int
	Col   int
	Value float64
}

// SparseMatrix is an immutable compressed sparse row matrix.
type SparseMatrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	values  []float64
}

// NewSparseMatrix builds a rows x cols CSR matrix from entries. Entries that
// share a cell are summed. Columns inside each row are sorted ascending.
func NewSparseMatrix(rows, cols int, entries []Entry) (*SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidMatrix, rows, cols)
	}

	cells := make([]map[int]float64, rows)
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, fmt.Errorf("%w: entry (%d,%d) outside %dx%d", ErrInvalidMatrix, e.Row, e.Col, rows, cols)
		}
		if cells[e.Row] == nil {
			cells[e.Row] = make(map[int]float64)
		}
		cells[e.Row][e.Col] += e.Value
	}

	m := &SparseMatrix{
		rows:   rows,
		cols:   cols,
		indptr: make([]int, rows+1),
	}

	for r := 0; r < rows; r++ {
		rowCols := make([]int, 0, len(cells[r]))
		for c := range cells[r] {
			rowCols = append(rowCols, c)
		}
		sort.Ints(rowCols)
		for _, c := range rowCols {
			m.indices = append(m.indices, c)
			m.values = append(m.values, cells[r][c])
		}
		m.indptr[r+1] = len(m.indices)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *SparseMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *SparseMatrix) Cols() int { return m.cols }

// NNZ returns the number of stored cells.
func (m *SparseMatrix) NNZ() int { return len(m.values) }

// Row returns the column indices and values of row r. The slices alias the
// matrix storage and must not be modified.
func (m *SparseMatrix) Row(r int) ([]int, []float64) {
	if r < 0 || r >= m.rows {
		return nil, nil
	}
	start, end := m.indptr[r], m.indptr[r+1]
	return m.indices[start:end], m.values[start:end]
}

// RowIndices returns a copy of the column indices stored in row r.
func (m *SparseMatrix) RowIndices(r int) []int {
	cols, _ := m.Row(r)
	out := make([]int, len(cols))
	copy(out, cols)
	return out
}

// At returns the value at (r, c), or 0 when the cell is empty.
func (m *SparseMatrix) At(r, c int) float64 {
	cols, vals := m.Row(r)
	i := sort.SearchInts(cols, c)
	if i < len(cols) && cols[i] == c {
		return vals[i]
	}
	return 0
}

// Scale returns a copy of m with every value multiplied by factor.
func (m *SparseMatrix) Scale(factor float64) *SparseMatrix {
	out := &SparseMatrix{
		rows:    m.rows,
		cols:    m.cols,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		values:  make([]float64, len(m.values)),
	}
	for i, v := range m.values {
		out.values[i] = v * factor
	}
	return out
}

// Transpose returns the cols x rows transpose of m.
func (m *SparseMatrix) Transpose() *SparseMatrix {
	t := &SparseMatrix{
		rows:    m.cols,
		cols:    m.rows,
		indptr:  make([]int, m.cols+1),
		indices: make([]int, len(m.indices)),
		values:  make([]float64, len(m.values)),
	}

	for _, c := range m.indices {
		t.indptr[c+1]++
	}
	for c := 0; c < m.cols; c++ {
		t.indptr[c+1] += t.indptr[c]
	}

	next := append([]int(nil), t.indptr[:m.cols]...)
	for r := 0; r < m.rows; r++ {
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			c := m.indices[k]
			pos := next[c]
			t.indices[pos] = r
			t.values[pos] = m.values[k]
			next[c]++
		}
	}

	return t
}
