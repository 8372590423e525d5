package mesh

import (
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
)

// Mesh is a structured NR x NZ node grid of biquadratic elements, read only once built
type Mesh struct {
	Points    []geometry2D.Point
	Elements  []BiquadElement
	Materials []geometry2D.Material
	Dirichlet []BoundaryCondition
	Neumann   []BoundaryCondition
	Newton    []BoundaryCondition
	NR, NZ    int // corner node columns and rows
}

func (m *Mesh) NumElements() int { return len(m.Elements) }

// ElementRect returns the r and z extent of an axis aligned element
func (m *Mesh) ElementRect(ie int) (r0, r1, z0, z1 float64) {
	var (
		el = &m.Elements[ie]
		lb = m.Points[el.Nodes[0]]
		rt = m.Points[el.Nodes[3]]
	)
	return lb.R, rt.R, lb.Z, rt.Z
}

func (m *Mesh) Material(ie int) geometry2D.Material {
	return m.Materials[m.Elements[ie].Area]
}

func (m *Mesh) BasisPosition(ie, local int) geometry2D.Point {
	return m.Elements[ie].BasisPosition(local, m.Points)
}

// ElementCorners lists the 4 corner node indices of every element
func (m *Mesh) ElementCorners() (corners [][4]int) {
	corners = make([][4]int, len(m.Elements))
	for ie := range m.Elements {
		corners[ie] = m.Elements[ie].Nodes
	}
	return
}

func (m *Mesh) Bounds() *geometry2D.BoundingBox {
	return geometry2D.NewBoundingBox(m.Points)
}
