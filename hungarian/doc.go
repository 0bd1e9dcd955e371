// SPDX-License-Identifier: MIT

// Package hungarian solves the square assignment problem with the primal-dual
// Kuhn–Munkres (Hungarian) method and re-optimizes incrementally when some
// rows or columns of the cost matrix change.
//
// Given an n×n cost matrix C, a Solver finds a permutation p minimizing
// Σ C[i][p(i)] together with dual values u (rows) and v (columns) such that
//
//	C[i][j] − u[i] − v[j] ≥ 0           for all i, j   (feasibility)
//	C[i][p(i)] − u[i] − v[p(i)] = 0     for all i      (complementary slackness)
//	Σ C[i][p(i)] = Σ u[i] + Σ v[j]                      (zero duality gap)
//
// The duals are what make incremental updates cheap. When row i changes, the
// column duals of every other row remain valid lower bounds, so the solver
// drops row i's assignment, re-derives
//
//	u[i] = min_j ( C'[i][j] − v[j] )
//
// and resumes the augmenting-path search from the surviving partial matching
// instead of starting over. UpdateCols is symmetric.
//
// Phases (one state machine, see solver.go):
//
//  1. reduce  : row minima then column minima become the initial duals.
//  2. seed    : greedy minimum-degree matching over zero-slack cells.
//  3. augment : alternating tree from unassigned rows over uncovered zeros.
//  4. adjust  : shift duals by the smallest uncovered slack; back to 3.
//
// Construction runs 1→2→(3↔4); updates run (3↔4) only.
//
// Errors:
//   - ErrShape  (*ShapeError) : input is not a non-empty square matrix.
//   - ErrIndex  (*IndexError) : an update names a row/column outside [0,n).
//   - ErrValue  (*ValueError) : a cost is NaN or ±Inf.
//
// Validation completes before any state is touched, so a failed update leaves
// the Solver exactly as it was.
//
// Concurrency: a Solver is NOT safe for concurrent use. Every method runs to
// completion synchronously; callers sharing a Solver must serialize access
// (one lock per instance) or shard work across independent Solvers.
//
// Complexity:
//   - Solve: O(n³) typical, O(n⁴) worst case with the O(n²) smallest-slack scan.
//   - UpdateRows/UpdateCols with k changes: O(k·n) dual repair + O(n²) slack
//     rebuild + O(k) augmentations, each O(n²) per dual adjustment.
package hungarian
