// SPDX-License-Identifier: MIT

package hungarian

import (
	"fmt"
	"math"
)

// Check verifies that the current state certifies an optimal assignment:
//
//  1. the matching is a bijection on [0,n) in both directions;
//  2. feasibility:  C[i][j] − u[i] − v[j] ≥ −tol for every cell;
//  3. complementary slackness: |C[i][a(i)] − u[i] − v[a(i)]| ≤ tol;
//  4. duality: |Cost − (Σu + Σv)| ≤ tol·max(1, |Cost|);
//  5. Cost equals Σ C[i][a(i)] recomputed from scratch.
//
// Returns nil or an error wrapping ErrCertificate describing the first violation.
//
// Complexity: O(n²).
func (s *Solver) Check(tol float64) error {
	var (
		n         = s.n
		seenCols  = make([]bool, n)
		i, j      int
		reduced   float64
		dualSum   float64
		matchCost float64
	)

	// 1. Bijection.
	if s.assignments != n {
		return fmt.Errorf("%w: %d of %d rows assigned", ErrCertificate, s.assignments, n)
	}
	for i = 0; i < n; i++ {
		slot := s.rowAssign[i]
		if !slot.Valid || slot.Index < 0 || slot.Index >= n {
			return fmt.Errorf("%w: row %d unassigned", ErrCertificate, i)
		}
		if seenCols[slot.Index] {
			return fmt.Errorf("%w: column %d assigned twice", ErrCertificate, slot.Index)
		}
		seenCols[slot.Index] = true
		if back := s.colAssign[slot.Index]; !back.Valid || back.Index != i {
			return fmt.Errorf("%w: row %d → column %d not mirrored", ErrCertificate, i, slot.Index)
		}
	}

	// 2. Feasibility.
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			reduced = s.costs[i*n+j] - s.rowDual[i] - s.colDual[j]
			if reduced < -tol {
				return fmt.Errorf("%w: slack(%d,%d) = %g < 0", ErrCertificate, i, j, reduced)
			}
		}
	}

	// 3. Complementary slackness.
	for i = 0; i < n; i++ {
		j = s.rowAssign[i].Index
		reduced = s.costs[i*n+j] - s.rowDual[i] - s.colDual[j]
		if math.Abs(reduced) > tol {
			return fmt.Errorf("%w: matched slack(%d,%d) = %g", ErrCertificate, i, j, reduced)
		}
		matchCost += s.costs[i*n+j]
	}

	// 4. Duality gap.
	for i = 0; i < n; i++ {
		dualSum += s.rowDual[i] + s.colDual[i]
	}
	if math.Abs(s.total-dualSum) > tol*math.Max(1, math.Abs(s.total)) {
		return fmt.Errorf("%w: cost %g != dual objective %g", ErrCertificate, s.total, dualSum)
	}

	// 5. Stored cost is current.
	if math.Abs(s.total-matchCost) > tol*math.Max(1, math.Abs(matchCost)) {
		return fmt.Errorf("%w: stored cost %g != recomputed %g", ErrCertificate, s.total, matchCost)
	}

	return nil
}
