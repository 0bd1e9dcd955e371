// SPDX-License-Identifier: MIT

package hungarian

import (
	"math"

	"go.uber.org/zap"
)

// adjust is phase 4: let δ be the smallest slack over (uncovered row,
// uncovered column). Uncovered rows gain δ of dual, covered columns lose δ.
// In slack terms:
//
//	covered row,   covered column:   +δ
//	uncovered row, uncovered column: −δ   (exposes at least one new zero)
//	otherwise:                        unchanged
//
// Matched pairs never sit on a covered row and a covered column, so their
// slack stays exactly zero; every other slack stays >= 0 by choice of δ.
//
// Complexity: O(n²).
func (s *Solver) adjust(ws *workspace) phase {
	var (
		n     = s.n
		delta = s.smallestUncovered(ws)
		i, j  int
	)
	if ce := s.opts.Logger.Check(zap.DebugLevel, "hungarian dual adjustment"); ce != nil {
		ce.Write(zap.Float64("delta", delta), zap.Int("assignments", s.assignments))
	}

	for i = 0; i < n; i++ {
		rowCovered := ws.coveredRows[i] == Covered
		for j = 0; j < n; j++ {
			colCovered := ws.coveredCols[j] == Covered
			switch {
			case rowCovered && colCovered:
				s.slack[i*n+j] += delta
			case !rowCovered && !colCovered:
				s.slack[i*n+j] -= delta
			}
		}
	}

	for i = 0; i < n; i++ {
		if ws.coveredRows[i] == Uncovered {
			s.rowDual[i] += delta
		}
		if ws.coveredCols[i] == Covered {
			s.colDual[i] -= delta
		}
	}

	return phaseAugment
}

// smallestUncovered returns the minimum slack over uncovered rows × uncovered
// columns.
//
// TODO: keep a per-column running minimum during phase 3 so this becomes O(n).
//
// Complexity: O(n²).
func (s *Solver) smallestUncovered(ws *workspace) float64 {
	var (
		n        = s.n
		smallest = math.Inf(1)
		i, j     int
	)
	for i = 0; i < n; i++ {
		if ws.coveredRows[i] == Covered {
			continue
		}
		for j = 0; j < n; j++ {
			if ws.coveredCols[j] == Uncovered && s.slack[i*n+j] < smallest {
				smallest = s.slack[i*n+j]
			}
		}
	}

	return smallest
}
