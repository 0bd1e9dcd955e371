// SPDX-License-Identifier: MIT

// Package hungarian - incremental re-optimization.
//
// Contract: the caller supplies the COMPLETE
// replacement cost matrix plus the indices that changed. Only the named rows
// (or columns) get their assignment dropped and their dual re-derived; the
// matrix itself is replaced wholesale, so an unnamed row that differs in the
// replacement is NOT repaired. SetRows/SetCols are the narrower entry points
// that cannot make that mistake.
package hungarian

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/matrix"
)

// UpdateRows replaces the cost matrix with cost, repairs the duals of the
// changed rows and re-optimizes from the surviving partial matching.
//
// Errors (state unchanged on any error):
//   - *ShapeError when cost is not n×n.
//   - *ValueError when cost holds NaN/±Inf.
//   - *IndexError when a row index is outside [0,n).
//
// Complexity: O(k·n + n²) repair, then phases 3/4 for at most k augmentations.
func (s *Solver) UpdateRows(cost matrix.Matrix, rows []int) error {
	if err := validateIndices(AxisRow, s.n, rows); err != nil {
		return err
	}
	data, err := validateReplacement(s.n, cost)
	if err != nil {
		return err
	}
	s.applyRows(data, rows)

	return nil
}

// UpdateCols is UpdateRows for columns.
func (s *Solver) UpdateCols(cost matrix.Matrix, cols []int) error {
	if err := validateIndices(AxisCol, s.n, cols); err != nil {
		return err
	}
	data, err := validateReplacement(s.n, cost)
	if err != nil {
		return err
	}
	s.applyCols(data, cols)

	return nil
}

// UpdateRowsFlat is UpdateRows for a row-major replacement of length n².
func (s *Solver) UpdateRowsFlat(cost []float64, rows []int) error {
	if err := validateIndices(AxisRow, s.n, rows); err != nil {
		return err
	}
	data, err := validateReplacementFlat(s.n, cost)
	if err != nil {
		return err
	}
	s.applyRows(data, rows)

	return nil
}

// UpdateColsFlat is UpdateCols for a row-major replacement of length n².
func (s *Solver) UpdateColsFlat(cost []float64, cols []int) error {
	if err := validateIndices(AxisCol, s.n, cols); err != nil {
		return err
	}
	data, err := validateReplacementFlat(s.n, cost)
	if err != nil {
		return err
	}
	s.applyCols(data, cols)

	return nil
}

// SetRows replaces only the named rows (row index → n new costs) and
// re-optimizes. Rows not in the map keep their current costs.
//
// Errors: *IndexError, *ShapeError (row length != n), *ValueError.
func (s *Solver) SetRows(values map[int][]float64) error {
	return s.setLines(AxisRow, values)
}

// SetCols replaces only the named columns (column index → n new costs).
func (s *Solver) SetCols(values map[int][]float64) error {
	return s.setLines(AxisCol, values)
}

func (s *Solver) setLines(axis Axis, values map[int][]float64) error {
	var (
		n       = s.n
		indices = make([]int, 0, len(values))
		idx, k  int
	)
	for idx = range values {
		indices = append(indices, idx)
	}
	sort.Ints(indices) // deterministic validation and repair order

	if err := validateIndices(axis, n, indices); err != nil {
		return err
	}
	data := append([]float64(nil), s.costs...)
	for _, idx = range indices {
		line := values[idx]
		if len(line) != n {
			return &ShapeError{Len: len(line), Want: n, Err: matrix.ErrDimensionMismatch}
		}
		for k = 0; k < n; k++ {
			if math.IsNaN(line[k]) || math.IsInf(line[k], 0) {
				if axis == AxisRow {
					return &ValueError{Row: idx, Col: k, Value: line[k]}
				}

				return &ValueError{Row: k, Col: idx, Value: line[k]}
			}
			if axis == AxisRow {
				data[idx*n+k] = line[k]
			} else {
				data[k*n+idx] = line[k]
			}
		}
	}

	if axis == AxisRow {
		s.applyRows(data, indices)
	} else {
		s.applyCols(data, indices)
	}

	return nil
}

// applyRows performs the row repair on validated input.
func (s *Solver) applyRows(data []float64, rows []int) {
	var (
		n        = s.n
		i, j     int
		smallest float64
	)
	s.costs = data

	for _, i = range rows {
		if col := s.rowAssign[i]; col.Valid {
			s.assignments--
			s.colAssign[col.Index] = Slot{}
			s.rowAssign[i] = Slot{}
		}
		// Column duals of untouched columns remain valid lower bounds,
		// so the tightest feasible dual for row i is:
		smallest = math.Inf(1)
		for j = 0; j < n; j++ {
			if v := data[i*n+j] - s.colDual[j]; v < smallest {
				smallest = v
			}
		}
		s.rowDual[i] = smallest
	}

	s.resume(AxisRow, len(rows))
}

// applyCols performs the column repair on validated input.
func (s *Solver) applyCols(data []float64, cols []int) {
	var (
		n        = s.n
		i, j     int
		smallest float64
	)
	s.costs = data

	for _, j = range cols {
		if row := s.colAssign[j]; row.Valid {
			s.assignments--
			s.rowAssign[row.Index] = Slot{}
			s.colAssign[j] = Slot{}
		}
		smallest = math.Inf(1)
		for i = 0; i < n; i++ {
			if v := data[i*n+j] - s.rowDual[i]; v < smallest {
				smallest = v
			}
		}
		s.colDual[j] = smallest
	}

	s.resume(AxisCol, len(cols))
}

// resume rebuilds the slack matrix from the current duals and continues at
// phase 3 until the matching is perfect again.
func (s *Solver) resume(axis Axis, changed int) {
	s.rebuildSlack()
	s.iterations = 0
	s.run(phaseAugment)
	s.computeCost()

	s.opts.Logger.Debug("hungarian re-optimized",
		zap.Stringer("axis", axis),
		zap.Int("changed", changed),
		zap.Int("iterations", s.iterations),
		zap.Float64("cost", s.total),
	)
}

// rebuildSlack recomputes slack = C − u − v for every cell. Assigned pairs are
// pinned to exactly 0; negative values and values below Epsilon are clamped
// to 0 so phase 3 can keep testing zeros by exact equality.
//
// Complexity: O(n²).
func (s *Solver) rebuildSlack() {
	var (
		n    = s.n
		eps  = s.opts.Epsilon
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = s.costs[i*n+j] - s.rowDual[i] - s.colDual[j]
			if (s.rowAssign[i].Valid && s.rowAssign[i].Index == j) || v < eps {
				v = 0
			}
			s.slack[i*n+j] = v
		}
	}
}
