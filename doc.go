// SPDX-License-Identifier: MIT

// Package dynhung solves the square assignment problem and keeps the optimum
// current while the cost matrix changes.
//
// Given an n×n cost matrix C, the solver finds the permutation a minimizing
// Σ C[i][a(i)] with the primal-dual Hungarian (Kuhn–Munkres) method. When a
// few rows or columns of C change, it repairs only the affected duals and
// re-runs the augmenting-path search from the surviving partial matching,
// which is far cheaper than solving again.
//
// Layout:
//
//	matrix/          dense row-major storage, sentinel errors, validators
//	hungarian/       the Solver: construction, UpdateRows/UpdateCols, Check
//	internal/        config, logger, metrics, session registry, problem files,
//	                 HTTP binding and the cobra CLI
//	cmd/dynhung/     the dynhung binary
//
// Quick start:
//
//	s, err := hungarian.NewFromRows([][]float64{{4, 1, 3}, {2, 0, 5}, {3, 2, 2}})
//	// s.Assignment() == [1 0 2], s.Cost() == 5
//	err = s.SetRows(map[int][]float64{2: {0, 9, 9}})
//	// s.Assignment() == [2 1 0], s.Cost() == 3
package dynhung
