// SPDX-License-Identifier: MIT

package hungarian_test

import (
	"fmt"

	"github.com/katalvlaran/dynhung/hungarian"
)

// ExampleNewFromRows solves a 3×3 assignment.
func ExampleNewFromRows() {
	s, err := hungarian.NewFromRows([][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.Assignment())
	fmt.Println(s.Cost())
	// Output:
	// [1 0 2]
	// 5
}

// ExampleSolver_SetRows re-optimizes after a single row changes.
func ExampleSolver_SetRows() {
	s, _ := hungarian.NewFromRows([][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	})
	if err := s.SetRows(map[int][]float64{2: {0, 9, 9}}); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.Assignment(), s.Cost())
	// Output:
	// [2 1 0] 3
}
