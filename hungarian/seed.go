// SPDX-License-Identifier: MIT

package hungarian

// seed is phase 2: a greedy minimum-degree matching over zero-slack cells.
//
// Repeatedly pick the unassigned row with the fewest remaining zeros (>0),
// then the unassigned zero column in that row with the fewest zeros, and match
// them. Matching a column retires all of its zeros from the row counters, so
// rowZeros[i] always counts zeros of row i in unassigned columns.
//
// Complexity: O(n²) per assignment, O(n³) worst case.
func (s *Solver) seed() phase {
	var (
		n        = s.n
		rowZeros = make([]int, n)
		colZeros = make([]int, n)
		i, j     int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if s.slack[i*n+j] == 0 {
				rowZeros[i]++
				colZeros[j]++
			}
		}
	}

	for {
		row, ok := s.leastZeroRow(rowZeros)
		if !ok {
			break
		}
		col, ok := s.leastZeroCol(row, colZeros)
		if !ok {
			// Every zero of this row sits in a taken column; retire the row.
			rowZeros[row] = 0
			continue
		}

		s.rowAssign[row] = Slot{Index: col, Valid: true}
		s.colAssign[col] = Slot{Index: row, Valid: true}
		s.assignments++

		colZeros[col] = 0
		for i = 0; i < n; i++ {
			if s.slack[i*n+col] == 0 {
				rowZeros[i]--
			}
		}
	}

	return phaseAugment
}

// leastZeroRow finds the unassigned row with the smallest positive zero count.
// Ties go to the lowest index.
func (s *Solver) leastZeroRow(rowZeros []int) (int, bool) {
	var (
		best   = -1
		fewest int
		i      int
	)
	for i = 0; i < s.n; i++ {
		if s.rowAssign[i].Valid || rowZeros[i] <= 0 {
			continue
		}
		if best < 0 || rowZeros[i] < fewest {
			best, fewest = i, rowZeros[i]
		}
	}

	return best, best >= 0
}

// leastZeroCol finds the unassigned zero column of row with the smallest zero count.
// Ties go to the lowest index.
func (s *Solver) leastZeroCol(row int, colZeros []int) (int, bool) {
	var (
		best   = -1
		fewest int
		j      int
	)
	for j = 0; j < s.n; j++ {
		if s.slack[row*s.n+j] != 0 || s.colAssign[j].Valid {
			continue
		}
		if best < 0 || colZeros[j] < fewest {
			best, fewest = j, colZeros[j]
		}
	}

	return best, best >= 0
}
