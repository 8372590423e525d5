package FEM2D

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// GaussOrder is the number of Gauss-Legendre points, exact for polynomials of degree 2*5-1 = 9
const GaussOrder = 5

var (
	gaussPoints, gaussWeights [GaussOrder]float64
)

func init() {
	quad.Legendre{}.FixedLocations(gaussPoints[:], gaussWeights[:], -1, 1)
}

// GaussTable returns the shared reference points and weights on [-1,1]
func GaussTable() (x, w [GaussOrder]float64) {
	return gaussPoints, gaussWeights
}

// Integrate1D integrates f over the interval spanned by a and b
func Integrate1D(f func(x float64) float64, a, b float64) (s float64) {
	var (
		h = math.Abs(b - a)
	)
	for i := 0; i < GaussOrder; i++ {
		s += gaussWeights[i] * f((a+b+gaussPoints[i]*h)/2)
	}
	return s * h / 2
}

// Integrate2D integrates f over the rectangle [r0,r1] x [z0,z1] with the tensor product rule
func Integrate2D(f func(r, z float64) float64, r0, r1, z0, z1 float64) (s float64) {
	var (
		hr = math.Abs(r1 - r0)
		hz = math.Abs(z1 - z0)
	)
	for i := 0; i < GaussOrder; i++ {
		pr := (r0 + r1 + gaussPoints[i]*hr) / 2
		for j := 0; j < GaussOrder; j++ {
			pz := (z0 + z1 + gaussPoints[j]*hz) / 2
			s += gaussWeights[i] * gaussWeights[j] * f(pr, pz)
		}
	}
	return s * hr * hz / 4
}
