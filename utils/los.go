package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SymOperator is a square operator able to apply itself to a vector, y = A x
type SymOperator interface {
	Size() int
	Mul(x, y []float64) []float64
}

// LOS is the locally optimal three term iteration for symmetric systems
type LOS struct {
	MaxIterations int
	Eps           float64 // tolerance on the squared residual norm
}

type LOSResult struct {
	X          []float64
	Iterations int
	ResidualSq float64 // squared residual norm of the returned iterate
	Converged  bool
}

func NewLOS(maxIterations int, eps float64) LOS {
	return LOS{MaxIterations: maxIterations, Eps: eps}
}

/*
Solve iterates from x = 0:

	r = b - A x,  z = r,  p = A z
	alpha = (p,r)/(p,p);  x += alpha z;  r -= alpha p
	beta = -(p, A r)/(p,p);  z = r + beta z;  p = A r + beta p

stopping when (r,r) < Eps or after MaxIterations. Running out of iterations is not an error,
the last iterate is returned with Converged false.
*/
func (s LOS) Solve(A SymOperator, b []float64) (res LOSResult) {
	var (
		n  = A.Size()
		x  = make([]float64, n)
		r  = make([]float64, n)
		z  = make([]float64, n)
		p  = make([]float64, n)
		Ar = make([]float64, n)
	)
	if len(b) != n {
		panic("size of right hand side not equal to size of operator")
	}
	A.Mul(x, Ar)
	floats.SubTo(r, b, Ar)
	copy(z, r)
	A.Mul(z, p)

	sq := floats.Dot(r, r)
	var iter int
	for iter = 0; iter < s.MaxIterations; iter++ {
		if sq < s.Eps {
			break
		}
		pp := floats.Dot(p, p)
		if pp == 0 || math.IsNaN(pp) {
			break
		}
		alpha := floats.Dot(p, r) / pp
		floats.AddScaled(x, alpha, z)
		floats.AddScaled(r, -alpha, p)

		sq = floats.Dot(r, r)
		if sq < s.Eps {
			iter++
			break
		}
		A.Mul(r, Ar)
		beta := -floats.Dot(p, Ar) / pp
		floats.Scale(beta, z)
		floats.Add(z, r)
		floats.Scale(beta, p)
		floats.Add(p, Ar)
	}
	res = LOSResult{
		X:          x,
		Iterations: iter,
		ResidualSq: sq,
		Converged:  sq < s.Eps,
	}
	return
}
