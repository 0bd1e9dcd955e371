// SPDX-License-Identifier: MIT

package hungarian

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/matrix"
)

// phase is a state of the Hungarian state machine.
type phase uint8

const (
	phaseReduce  phase = iota + 1 // row/column minima → initial duals
	phaseSeed                     // greedy minimum-degree matching
	phaseAugment                  // alternating-tree search
	phaseAdjust                   // dual adjustment by smallest uncovered slack
)

func (p phase) String() string {
	switch p {
	case phaseReduce:
		return "reduce"
	case phaseSeed:
		return "seed"
	case phaseAugment:
		return "augment"
	case phaseAdjust:
		return "adjust"
	}

	return "unknown"
}

// Solver holds a square cost matrix, its optimal assignment and the dual
// values certifying it. See the package documentation for the model.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	n           int
	costs       []float64 // row-major C, len n*n
	slack       []float64 // row-major C[i][j] - rowDual[i] - colDual[j]
	rowAssign   []Slot    // row -> column
	colAssign   []Slot    // column -> row
	rowDual     []float64
	colDual     []float64
	assignments int
	total       float64
	iterations  int
	opts        Options
}

// New builds a Solver for a square cost matrix and solves it.
//
// Errors:
//   - *ShapeError (ErrShape) when cost is nil, empty or not square.
//   - *ValueError (ErrValue) when any entry is NaN or ±Inf.
//
// Complexity: O(n³) typical.
func New(cost matrix.Matrix, opts ...Option) (*Solver, error) {
	n, data, err := flattenSquare(cost)
	if err != nil {
		return nil, err
	}

	return newSolver(n, data, opts), nil
}

// NewFromFlat builds a Solver from a row-major slice whose length must be an
// exact square n². The slice is copied.
//
// Errors: as New.
func NewFromFlat(data []float64, opts ...Option) (*Solver, error) {
	n, err := sizeOfFlat(data)
	if err != nil {
		return nil, err
	}
	if err = validateFinite(n, data); err != nil {
		return nil, err
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return newSolver(n, cp, opts), nil
}

// NewFromRows builds a Solver from a [][]float64 of n rows of n costs.
//
// Errors: as New.
func NewFromRows(rows [][]float64, opts ...Option) (*Solver, error) {
	n := len(rows)
	if n == 0 {
		return nil, &ShapeError{Len: 0, Err: matrix.ErrNonSquare}
	}
	data := make([]float64, 0, n*n)
	var i int
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, &ShapeError{Rows: n, Cols: len(rows[i]), Err: matrix.ErrNonSquare}
		}
		data = append(data, rows[i]...)
	}
	if err := validateFinite(n, data); err != nil {
		return nil, err
	}

	return newSolver(n, data, opts), nil
}

// newSolver allocates state for an n×n instance that owns data, and runs the
// full state machine.
func newSolver(n int, data []float64, opts []Option) *Solver {
	s := &Solver{
		n:         n,
		costs:     data,
		slack:     make([]float64, n*n),
		rowAssign: make([]Slot, n),
		colAssign: make([]Slot, n),
		rowDual:   make([]float64, n),
		colDual:   make([]float64, n),
		opts:      gatherOptions(opts),
	}
	s.solve()

	return s
}

// solve runs phases 1→2→(3↔4) from scratch.
func (s *Solver) solve() {
	copy(s.slack, s.costs)
	for i := range s.rowAssign {
		s.rowAssign[i] = Slot{}
		s.colAssign[i] = Slot{}
	}
	s.assignments = 0
	s.iterations = 0

	s.run(phaseReduce)
	s.computeCost()

	s.opts.Logger.Debug("hungarian solved",
		zap.Int("n", s.n),
		zap.Int("iterations", s.iterations),
		zap.Float64("cost", s.total),
	)
}

// run drives the state machine from start until the matching is perfect.
// The cover/mark workspace is owned by this call alone.
func (s *Solver) run(start phase) {
	var (
		ws = newWorkspace(s.n)
		p  = start
	)
	for s.assignments < s.n {
		switch p {
		case phaseReduce:
			p = s.reduce()
		case phaseSeed:
			p = s.seed()
		case phaseAugment:
			p = s.augment(ws)
		case phaseAdjust:
			p = s.adjust(ws)
		}
		s.iterations++
	}
}

// computeCost sums C[i][rowAssign[i]]. Requires a perfect matching.
func (s *Solver) computeCost() {
	var (
		total float64
		i     int
	)
	for i = 0; i < s.n; i++ {
		total += s.costs[i*s.n+s.rowAssign[i].Index]
	}
	s.total = total
}

// ---------- accessors (pure; every slice is a copy) ----------

// N returns the problem size.
func (s *Solver) N() int { return s.n }

// Cost returns the total cost of the current optimal assignment.
func (s *Solver) Cost() float64 { return s.total }

// Iterations returns the number of phase steps taken by the last solve or update.
func (s *Solver) Iterations() int { return s.iterations }

// Assignment returns a[i] = column assigned to row i.
func (s *Solver) Assignment() []int {
	out := make([]int, s.n)
	for i, slot := range s.rowAssign {
		out[i] = slot.Index
	}

	return out
}

// Match returns the column assigned to row i, and false if i is out of range.
func (s *Solver) Match(row int) (int, bool) {
	if row < 0 || row >= s.n || !s.rowAssign[row].Valid {
		return 0, false
	}

	return s.rowAssign[row].Index, true
}

// RowDuals returns a copy of the row dual values.
func (s *Solver) RowDuals() []float64 { return append([]float64(nil), s.rowDual...) }

// ColDuals returns a copy of the column dual values.
func (s *Solver) ColDuals() []float64 { return append([]float64(nil), s.colDual...) }

// CostFlat returns a row-major copy of the current cost matrix.
func (s *Solver) CostFlat() []float64 { return append([]float64(nil), s.costs...) }

// CostMatrix returns the current cost matrix as an independent *matrix.Dense.
func (s *Solver) CostMatrix() *matrix.Dense {
	// costs were validated finite on the way in, so construction cannot fail.
	m, _ := matrix.NewFromFlat(s.n, s.n, s.costs)

	return m
}

// Snapshot returns every accessor's value in one Result.
func (s *Solver) Snapshot() Result {
	return Result{
		N:          s.n,
		Assignment: s.Assignment(),
		Cost:       s.total,
		RowDuals:   s.RowDuals(),
		ColDuals:   s.ColDuals(),
		Iterations: s.iterations,
	}
}
