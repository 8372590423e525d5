package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLOS(t *testing.T) {
	var (
		A     = testMatrix()
		xTrue = []float64{1, 2, 3, 4}
		b     = A.Mul(xTrue, nil)
	)
	{ // Converges on a small SPD system
		res := NewLOS(1000, 1.e-20).Solve(A, b)
		assert.True(t, res.Converged)
		assert.Less(t, res.Iterations, 100)
		assert.Less(t, res.ResidualSq, 1.e-20)
		for i := range xTrue {
			assert.InDelta(t, xTrue[i], res.X[i], 1.e-8)
		}
	}
	{ // Iteration cap is reported, not fatal
		res := NewLOS(1, 1.e-30).Solve(A, b)
		assert.False(t, res.Converged)
		assert.Equal(t, 1, res.Iterations)
		assert.Len(t, res.X, 4)
	}
	{ // Zero right hand side converges immediately to zero
		res := NewLOS(10, 1.e-20).Solve(A, make([]float64, 4))
		assert.True(t, res.Converged)
		assert.Equal(t, 0, res.Iterations)
		assert.Equal(t, []float64{0, 0, 0, 0}, res.X)
	}
	assert.Panics(t, func() { NewLOS(10, 1.e-20).Solve(A, []float64{1}) })
}
