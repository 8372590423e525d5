package Axisymmetric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/types"
)

// residual evaluates -(1/r) d/dr(lambda r du/dr) - d/dz(lambda du/dz) + gamma u - f with central differences
func residual(u geometry2D.Func, mtl geometry2D.Material, r, z float64) float64 {
	var (
		h    = 1.e-4
		ur   = func(r float64) float64 { return (u(r+h/2, z) - u(r-h/2, z)) / h }
		urr  = (r+h/2)*ur(r+h/2) - (r-h/2)*ur(r-h/2)
		uzz  = (u(r, z+h) - 2*u(r, z) + u(r, z-h)) / (h * h)
		lhs  = -mtl.Lambda*urr/(h*r) - mtl.Lambda*uzz + mtl.Gamma*u(r, z)
		rhs  = mtl.F(r, z)
		diff = lhs - rhs
	)
	return diff
}

func TestCases(t *testing.T) {
	assert.Equal(t, []string{"layered", "linear", "mixed", "quadratic", "smooth"}, Names())
	_, err := Lookup("cubic", 2, 0)
	assert.Error(t, err)
	for _, name := range Names() {
		c, err := Lookup(name, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name)
		assert.Equal(t, 1, c.Params.Refinement)
		m, err := mesh.Build(c.Params)
		require.NoError(t, err, name)
		assert.NotEmpty(t, m.Dirichlet, name)
		// The source is consistent with the exact solution
		bb := m.Bounds()
		for _, st := range [][2]float64{{0.3, 0.3}, {0.7, 0.2}, {0.5, 0.8}} {
			p := bb.Lerp(st[0], st[1])
			ie := -1
			for k := range m.Elements {
				if m.Elements[k].BoundingBox(m.Points).Contains(p) {
					ie = k
					break
				}
			}
			require.NotEqual(t, -1, ie)
			assert.InDeltaf(t, 0., residual(c.Exact, m.Material(ie), p.R, p.Z), 1.e-4, "case %s at %v", name, p)
		}
	}
}

func TestMixedBorders(t *testing.T) {
	c := Mixed(2, 0)
	m, err := mesh.Build(c.Params)
	require.NoError(t, err)
	assert.Len(t, m.Dirichlet, 2)
	assert.Len(t, m.Neumann, 4)
	assert.Len(t, m.Newton, 2)
	for _, bc := range m.Newton {
		assert.Equal(t, 2., bc.Beta)
		assert.Equal(t, mesh.BorderRight, bc.LocalBorder)
		// beta (u_beta - u) equals the outward flux 2 lambda r at r = 2
		assert.InDelta(t, 4., bc.Beta*(bc.Value(2, 0.5)-c.Exact(2, 0.5)), 1.e-14)
	}
}

func TestRectangle(t *testing.T) {
	pts := Rectangle(3, 2, 1, 2, 0, 4)
	assert.Equal(t, []geometry2D.Point{{R: 1, Z: 0}, {R: 1.5, Z: 0}, {R: 2, Z: 0}, {R: 1, Z: 4}, {R: 1.5, Z: 4}, {R: 2, Z: 4}}, pts)
	b := Sides(3, 2, [4]types.BoundaryKind{}, [4]int{0, 1, 2, 3})
	assert.Equal(t, [2]int{0, 2}, b[0].Points)
	assert.Equal(t, [2]int{0, 3}, b[1].Points)
	assert.Equal(t, [2]int{2, 5}, b[2].Points)
	assert.Equal(t, [2]int{3, 5}, b[3].Points)
	assert.Equal(t, 3, b[3].Formula)
}
