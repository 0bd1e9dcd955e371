// SPDX-License-Identifier: MIT

package hungarian_test

import (
	"math"
	"math/rand"
)

// certTol is the tolerance used for optimality certificates in tests.
const certTol = 1e-9

// bruteForce returns the minimum Σ C[i][p(i)] over all permutations p.
// Heap's algorithm, O(n!·n); intended for n ≤ 7.
func bruteForce(cost [][]float64) float64 {
	n := len(cost)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := math.Inf(1)
	eval := func() {
		var sum float64
		for i, j := range perm {
			sum += cost[i][j]
		}
		if sum < best {
			best = sum
		}
	}

	c := make([]int, n)
	eval()
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			eval()
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	return best
}

// randomIntRows builds an n×n matrix of integer costs in [0, max).
// Integer costs keep every dual exactly representable.
func randomIntRows(rng *rand.Rand, n, max int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = float64(rng.Intn(max))
		}
	}

	return rows
}

// randomFloatRows builds an n×n matrix of costs uniform in [lo, hi).
func randomFloatRows(rng *rand.Rand, n int, lo, hi float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = lo + rng.Float64()*(hi-lo)
		}
	}

	return rows
}

// cloneRows deep-copies a [][]float64.
func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i := range rows {
		out[i] = append([]float64(nil), rows[i]...)
	}

	return out
}

// flatten converts rows to a row-major slice.
func flatten(rows [][]float64) []float64 {
	out := make([]float64, 0, len(rows)*len(rows))
	for _, r := range rows {
		out = append(out, r...)
	}

	return out
}

// pickDistinct returns k distinct indices from [0,n) in random order.
func pickDistinct(rng *rand.Rand, n, k int) []int {
	return rng.Perm(n)[:k]
}

// assignmentCost evaluates Σ rows[i][a[i]].
func assignmentCost(rows [][]float64, a []int) float64 {
	var sum float64
	for i, j := range a {
		sum += rows[i][j]
	}

	return sum
}

// isPermutation reports whether a is a bijection on [0,len(a)).
func isPermutation(a []int) bool {
	seen := make([]bool, len(a))
	for _, j := range a {
		if j < 0 || j >= len(a) || seen[j] {
			return false
		}
		seen[j] = true
	}

	return true
}
