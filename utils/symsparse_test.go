package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

/*
testMatrix builds

	[4 1 0 2]
	[1 5 3 0]
	[0 3 6 1]
	[2 0 1 7]
*/
func testMatrix() *SymSparse {
	A := NewSymSparse([]int{0, 0, 1, 2, 4}, []int{0, 1, 0, 2})
	for i, d := range []float64{4, 5, 6, 7} {
		A.Add(i, i, d)
	}
	A.Add(1, 0, 1)
	A.Add(2, 1, 3)
	A.Add(3, 0, 2)
	A.Add(3, 2, 0.5)
	A.Add(3, 2, 0.5)
	return A
}

func TestSymSparseStorage(t *testing.T) {
	A := testMatrix()
	assert.Equal(t, 4, A.Size())
	assert.Equal(t, 4, A.NNZ())
	assert.Equal(t, []float64{1, 3, 2, 1}, A.GG)
	assert.Equal(t, 3., A.At(1, 2))
	assert.Equal(t, 3., A.At(2, 1))
	assert.Equal(t, 0., A.At(0, 2))
	assert.Equal(t, -1, A.Slot(2, 0))
	assert.Equal(t, 3, A.Slot(3, 2))

	// Upper triangle and missing slots are programming errors
	assert.Panics(t, func() { A.Add(0, 1, 1) })
	assert.Panics(t, func() { A.Add(2, 0, 1) })
	assert.Panics(t, func() { A.Add(4, 0, 1) })

	// Bad portraits
	assert.Error(t, CheckPortrait([]int{0, 1}, []int{0}))
	assert.Error(t, CheckPortrait([]int{0, 0, 2}, []int{0, 0}))
	assert.Error(t, CheckPortrait([]int{0, 0, 0, 2}, []int{1, 0}))
	assert.Error(t, CheckPortrait([]int{0, 0, 1}, []int{}))
	assert.NoError(t, CheckPortrait([]int{0, 0, 1, 3}, []int{0, 0, 1}))
	assert.Panics(t, func() { NewSymSparse([]int{1, 1}, nil) })
}

func TestSymSparseMul(t *testing.T) {
	var (
		A      = testMatrix()
		S      = A.ToSymDense()
		csr    = A.ToDOK().ToCSR()
		probes = [][]float64{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{1, 2, 3, 4},
			{-0.5, 3, 1.25, -2},
		}
	)
	for _, x := range probes {
		y := A.Mul(x, nil)
		var yd, ys mat.VecDense
		yd.MulVec(S, mat.NewVecDense(4, x))
		ys.MulVec(csr, mat.NewVecDense(4, x))
		for i := range y {
			assert.InDelta(t, yd.AtVec(i), y[i], 1.e-14)
			assert.InDelta(t, ys.AtVec(i), y[i], 1.e-14)
		}
	}
	// The product buffer is overwritten, not accumulated
	y := []float64{9, 9, 9, 9}
	A.Mul([]float64{1, 1, 1, 1}, y)
	assert.Equal(t, []float64{7, 9, 10, 10}, y)

	assert.Panics(t, func() { A.Mul([]float64{1, 2, 3}, nil) })
	assert.Panics(t, func() { A.Mul([]float64{1, 2, 3, 4}, make([]float64, 2)) })
}

func TestSymSparseClearCopy(t *testing.T) {
	A := testMatrix()
	B := A.Copy()
	A.Clear()
	assert.Equal(t, []float64{0, 0, 0, 0}, A.DI)
	assert.Equal(t, []float64{0, 0, 0, 0}, A.GG)
	assert.Equal(t, []int{0, 1, 0, 2}, A.JG)
	assert.Equal(t, 7., B.At(3, 3))
	assert.True(t, mat.Equal(B, testMatrix().ToSymDense()))

	var buf bytes.Buffer
	require.NoError(t, B.DumpDense(&buf))
	assert.Contains(t, buf.String(), "4.0000000")
}
