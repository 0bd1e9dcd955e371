// SPDX-License-Identifier: MIT

// Package hungarian - input validation shared by construction and updates.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - Every check completes before the caller mutates any Solver state.
//   - Typed errors (ShapeError / IndexError / ValueError) that match the
//     package sentinels through errors.Is.
package hungarian

import (
	"math"

	"github.com/katalvlaran/dynhung/matrix"
)

// flattenSquare converts any square matrix.Matrix into a row-major copy and
// validates it. Returns n and the flat data.
//
// Complexity: O(n²).
func flattenSquare(cost matrix.Matrix) (int, []float64, error) {
	if err := matrix.ValidateNotNil(cost); err != nil {
		return 0, nil, &ShapeError{Err: err}
	}
	if err := matrix.ValidateSquare(cost); err != nil {
		return 0, nil, &ShapeError{Rows: cost.Rows(), Cols: cost.Cols(), Err: err}
	}
	data, err := matrix.FlatOf(cost)
	if err != nil {
		return 0, nil, &ShapeError{Rows: cost.Rows(), Cols: cost.Cols(), Err: err}
	}
	n := cost.Rows()
	if err = validateFinite(n, data); err != nil {
		return 0, nil, err
	}

	return n, data, nil
}

// sizeOfFlat returns n such that n*n == len(data), n > 0.
// Complexity: O(1).
func sizeOfFlat(data []float64) (int, error) {
	n, ok := matrix.ExactSqrt(len(data))
	if !ok || n == 0 {
		return 0, &ShapeError{Len: len(data), Err: matrix.ErrNonSquare}
	}

	return n, nil
}

// validateFinite rejects the first NaN/±Inf cell of a row-major n×n buffer.
// Complexity: O(n²).
func validateFinite(n int, data []float64) error {
	var k int
	for k = 0; k < len(data); k++ {
		if math.IsNaN(data[k]) || math.IsInf(data[k], 0) {
			return &ValueError{Row: k / n, Col: k % n, Value: data[k]}
		}
	}

	return nil
}

// validateIndices checks every index against [0,n) before anything is mutated.
// Complexity: O(len(idx)).
func validateIndices(axis Axis, n int, idx []int) error {
	var i int
	for _, i = range idx {
		if i < 0 || i >= n {
			return &IndexError{Axis: axis, Index: i, N: n}
		}
	}

	return nil
}

// validateReplacement validates a full replacement matrix for an n×n solver
// and returns its flat copy.
//
// Errors: *ShapeError when the shape differs from n×n, *ValueError on non-finite.
// Complexity: O(n²).
func validateReplacement(n int, cost matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateNotNil(cost); err != nil {
		return nil, &ShapeError{Want: n, Err: err}
	}
	if cost.Rows() != n || cost.Cols() != n {
		return nil, &ShapeError{Rows: cost.Rows(), Cols: cost.Cols(), Want: n, Err: matrix.ErrDimensionMismatch}
	}
	data, err := matrix.FlatOf(cost)
	if err != nil {
		return nil, &ShapeError{Rows: n, Cols: n, Want: n, Err: err}
	}
	if err = validateFinite(n, data); err != nil {
		return nil, err
	}

	return data, nil
}

// validateReplacementFlat is validateReplacement for a row-major slice.
// The returned slice is a copy.
// Complexity: O(n²).
func validateReplacementFlat(n int, data []float64) ([]float64, error) {
	if len(data) != n*n {
		return nil, &ShapeError{Len: len(data), Want: n, Err: matrix.ErrDimensionMismatch}
	}
	if err := validateFinite(n, data); err != nil {
		return nil, err
	}
	out := make([]float64, len(data))
	copy(out, data)

	return out, nil
}
