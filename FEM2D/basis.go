package FEM2D

import (
	"fmt"

	"github.com/thegrosss/FEM-Course-Project/mesh"
)

// Psi1D is the quadratic Lagrange function fn (0 = left, 1 = middle, 2 = right) on [a,b]
func Psi1D(fn int, a, b, x float64) float64 {
	var (
		mid = 0.5 * (a + b)
		h2  = (b - a) * (b - a)
	)
	switch fn {
	case 0:
		return 2. / h2 * (x - mid) * (x - b)
	case 1:
		return -4. / h2 * (x - a) * (x - b)
	case 2:
		return 2. / h2 * (x - a) * (x - mid)
	}
	panic(fmt.Errorf("1D basis function index out of range: %d", fn))
}

// DPsi1D is the derivative of Psi1D with respect to x
func DPsi1D(fn int, a, b, x float64) float64 {
	var (
		mid = 0.5 * (a + b)
		h2  = (b - a) * (b - a)
	)
	switch fn {
	case 0:
		return 2. / h2 * ((x - mid) + (x - b))
	case 1:
		return -4. / h2 * ((x - a) + (x - b))
	case 2:
		return 2. / h2 * ((x - a) + (x - mid))
	}
	panic(fmt.Errorf("1D basis function index out of range: %d", fn))
}

/*
Rect is the physical extent of an axis aligned element. Its 9 basis functions are the
tensor products psi_fn(r,z) = Psi1D(fn%3, r) * Psi1D(fn/3, z), defined directly in (r,z).
*/
type Rect struct {
	R0, R1, Z0, Z1 float64
}

func ElementRect(m *mesh.Mesh, ie int) Rect {
	r0, r1, z0, z1 := m.ElementRect(ie)
	return Rect{R0: r0, R1: r1, Z0: z0, Z1: z1}
}

func (rc Rect) Psi(fn int, r, z float64) float64 {
	return Psi1D(fn%3, rc.R0, rc.R1, r) * Psi1D(fn/3, rc.Z0, rc.Z1, z)
}

func (rc Rect) DPsiDR(fn int, r, z float64) float64 {
	return DPsi1D(fn%3, rc.R0, rc.R1, r) * Psi1D(fn/3, rc.Z0, rc.Z1, z)
}

func (rc Rect) DPsiDZ(fn int, r, z float64) float64 {
	return Psi1D(fn%3, rc.R0, rc.R1, r) * DPsi1D(fn/3, rc.Z0, rc.Z1, z)
}

func (rc Rect) Contains(r, z float64) bool {
	return rc.R0 <= r && r <= rc.R1 && rc.Z0 <= z && z <= rc.Z1
}
