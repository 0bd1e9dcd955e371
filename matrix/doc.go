// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage used by the dynhung solvers.
//
// What is it?
//
//	A small, dependency-free row-major float64 matrix with safe accessors:
//		• Dense        : r×c buffer, offset = i*cols + j
//		• Matrix       : the read/write interface consumed by solvers
//		• Validators   : square / finite / same-shape guards returning sentinels
//		• Constructors : from a flat slice, from rows, or zero-filled
//
// Numeric policy:
//
//   - Public At/Set never panic on user input; they return ErrOutOfRange.
//   - Set rejects NaN and ±Inf by default (ErrNaNInf); assignment costs must be finite.
//   - Square-from-flat construction requires len(data) to be an exact square.
//
// Errors are package-level sentinels (errors.go) and are wrapped with call-site
// context via %w, so callers match them with errors.Is.
//
// Complexity quicksheet:
//
//	NewDense / NewFromFlat / NewFromRows: O(r*c)
//	At / Set: O(1)
//	Clone / Flat: O(r*c)
//	ValidateFinite: O(r*c)
package matrix
