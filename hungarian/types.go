// SPDX-License-Identifier: MIT

package hungarian

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them via errors.Is.
var (
	// ErrShape is returned when the cost matrix is empty or not square.
	ErrShape = errors.New("hungarian: cost matrix is not square")

	// ErrIndex is returned when an update names a row or column outside [0,n).
	ErrIndex = errors.New("hungarian: index out of range")

	// ErrValue is returned when a cost is NaN or ±Inf.
	ErrValue = errors.New("hungarian: non-finite cost")

	// ErrCertificate is returned by Check when the solver state does not
	// certify optimality.
	ErrCertificate = errors.New("hungarian: optimality certificate violated")
)

// ShapeError describes a rejected cost-matrix shape.
// Len is the flat element count when the input was flat; Rows/Cols are set
// when the input carried an explicit shape.
// Want is the expected order n for updates of an existing Solver (0 on construction).
type ShapeError struct {
	Len        int
	Rows, Cols int
	Want       int
	Err        error // underlying cause, may be nil
}

func (e *ShapeError) Error() string {
	switch {
	case e.Want > 0 && (e.Rows != 0 || e.Cols != 0):
		return fmt.Sprintf("hungarian: cost matrix is %d×%d, want %d×%d", e.Rows, e.Cols, e.Want, e.Want)
	case e.Want > 0:
		return fmt.Sprintf("hungarian: %d cost entries, want %d", e.Len, e.Want*e.Want)
	case e.Rows != 0 || e.Cols != 0:
		return fmt.Sprintf("hungarian: cost matrix is %d×%d, want non-empty square", e.Rows, e.Cols)
	}

	return fmt.Sprintf("hungarian: %d cost entries is not a non-zero perfect square", e.Len)
}

// Is reports ErrShape equivalence.
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// Unwrap exposes the underlying cause (e.g. a matrix sentinel).
func (e *ShapeError) Unwrap() error { return e.Err }

// Axis names the dimension an update applies to.
type Axis uint8

const (
	// AxisRow selects rows.
	AxisRow Axis = iota
	// AxisCol selects columns.
	AxisCol
)

// String returns "row" or "column".
func (a Axis) String() string {
	if a == AxisCol {
		return "column"
	}

	return "row"
}

// IndexError reports an update index outside [0,N).
type IndexError struct {
	Axis  Axis
	Index int
	N     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("hungarian: %s index %d is out of bounds [0,%d)", e.Axis, e.Index, e.N)
}

// Is reports ErrIndex equivalence.
func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// ValueError reports the first non-finite cost found.
type ValueError struct {
	Row, Col int
	Value    float64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("hungarian: cost at (%d,%d) is %v, want finite", e.Row, e.Col, e.Value)
}

// Is reports ErrValue equivalence.
func (e *ValueError) Is(target error) bool { return target == ErrValue }

// Slot is an optional index: Index is meaningful only when Valid is true.
// The zero value is "unassigned".
type Slot struct {
	Index int
	Valid bool
}

// Cover is the covered state of a row or column during phases 3/4.
type Cover uint8

const (
	Uncovered Cover = iota
	Covered
)

// Mark is the search-root state of a row during phase 3.
type Mark uint8

const (
	Unmarked Mark = iota
	Marked
)

// Result is a point-in-time copy of a solved Solver.
type Result struct {
	// N is the problem size.
	N int

	// Assignment[i] is the column assigned to row i.
	Assignment []int

	// Cost is Σ C[i][Assignment[i]].
	Cost float64

	// RowDuals and ColDuals certify optimality of Assignment.
	RowDuals []float64
	ColDuals []float64

	// Iterations is the number of phase steps the last solve/update took.
	Iterations int
}
