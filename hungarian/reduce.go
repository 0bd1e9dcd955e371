// SPDX-License-Identifier: MIT

package hungarian

import "math"

// reduce is phase 1: subtract each row's minimum, then each column's minimum,
// recording the minima as the initial duals. Afterwards every slack is >= 0
// and every row and column holds at least one exact zero.
//
// Complexity: O(n²).
func (s *Solver) reduce() phase {
	var (
		n        = s.n
		i, j     int
		smallest float64
	)

	// Rows.
	for i = 0; i < n; i++ {
		smallest = math.Inf(1)
		for j = 0; j < n; j++ {
			if s.slack[i*n+j] < smallest {
				smallest = s.slack[i*n+j]
			}
		}
		s.rowDual[i] = smallest
		for j = 0; j < n; j++ {
			s.slack[i*n+j] -= smallest
		}
	}

	// Columns.
	for j = 0; j < n; j++ {
		smallest = math.Inf(1)
		for i = 0; i < n; i++ {
			if s.slack[i*n+j] < smallest {
				smallest = s.slack[i*n+j]
			}
		}
		s.colDual[j] = smallest
		for i = 0; i < n; i++ {
			s.slack[i*n+j] -= smallest
		}
	}

	return phaseSeed
}
