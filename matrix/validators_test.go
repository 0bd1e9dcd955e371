// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynhung/matrix"
)

func TestValidateSquare(t *testing.T) {
	sq, _ := matrix.NewDense(3, 3)
	require.NoError(t, matrix.ValidateSquare(sq))

	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.ValidateSquare(typedNil), matrix.ErrNilMatrix)
}

func TestValidateSameShape(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(2, 3)
	c, _ := matrix.NewDense(3, 2)
	require.NoError(t, matrix.ValidateSameShape(a, b))
	require.ErrorIs(t, matrix.ValidateSameShape(a, c), matrix.ErrDimensionMismatch)
}

// looseMatrix is a Matrix that does not enforce the finite policy,
// so ValidateFinite has something to catch on the generic path.
type looseMatrix struct {
	n    int
	data []float64
}

func (l *looseMatrix) Rows() int { return l.n }
func (l *looseMatrix) Cols() int { return l.n }
func (l *looseMatrix) At(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= l.n || j >= l.n {
		return 0, matrix.ErrOutOfRange
	}
	return l.data[i*l.n+j], nil
}
func (l *looseMatrix) Set(i, j int, v float64) error {
	l.data[i*l.n+j] = v
	return nil
}
func (l *looseMatrix) Clone() matrix.Matrix {
	return &looseMatrix{n: l.n, data: append([]float64(nil), l.data...)}
}

func TestValidateFinite(t *testing.T) {
	ok := &looseMatrix{n: 2, data: []float64{1, 2, 3, 4}}
	require.NoError(t, matrix.ValidateFinite(ok))

	bad := &looseMatrix{n: 2, data: []float64{1, 2, math.NaN(), 4}}
	err := matrix.ValidateFinite(bad)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.Contains(t, err.Error(), "(1,0)")

	d, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, matrix.ValidateFinite(d))
}

func TestExactSqrt(t *testing.T) {
	cases := []struct {
		k    int
		n    int
		ok   bool
		name string
	}{
		{0, 0, true, "zero"},
		{1, 1, true, "one"},
		{9, 3, true, "nine"},
		{10, 3, false, "ten"},
		{1 << 40, 1 << 20, true, "large"},
		{-4, 0, false, "negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := matrix.ExactSqrt(tc.k)
			require.Equal(t, tc.ok, ok)
			if ok {
				require.Equal(t, tc.n, n)
			}
		})
	}
}

func TestFlatOf(t *testing.T) {
	l := &looseMatrix{n: 2, data: []float64{1, 2, 3, 4}}
	flat, err := matrix.FlatOf(l)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, flat)

	_, err = matrix.FlatOf(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
