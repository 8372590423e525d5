package geometry2D

import (
	"fmt"

	"github.com/thegrosss/FEM-Course-Project/types"
)

// Point is a node position in the axisymmetric (r,z) half plane, r >= 0
type Point struct {
	R, Z float64
}

func NewPoint(r, z float64) Point { return Point{R: r, Z: z} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.R, p.Z) }

// Mid returns the midpoint of the segment a-b
func Mid(a, b Point) Point {
	return Point{R: 0.5 * (a.R + b.R), Z: 0.5 * (a.Z + b.Z)}
}

// Centroid returns the arithmetic mean of the points
func Centroid(pts ...Point) (c Point) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c.R += p.R
		c.Z += p.Z
	}
	c.R /= float64(len(pts))
	c.Z /= float64(len(pts))
	return
}

// Edge is an unordered pair of node indices
type Edge struct {
	Node1, Node2 int
}

func NewEdge(n1, n2 int) Edge { return Edge{Node1: n1, Node2: n2} }

func (e Edge) Equal(o Edge) bool {
	return (e.Node1 == o.Node1 && e.Node2 == o.Node2) ||
		(e.Node1 == o.Node2 && e.Node2 == o.Node1)
}

func (e Edge) Key() types.EdgeKey { return types.NewEdgeKey([2]int{e.Node1, e.Node2}) }

// Func is an opaque scalar field f(r,z), used for boundary values, sources and exact solutions
type Func func(r, z float64) float64

// Const returns a Func that ignores its arguments
func Const(val float64) Func {
	return func(r, z float64) float64 { return val }
}

// Material holds the per-area coefficients of -div(Lambda grad u) + Gamma u = F
type Material struct {
	Lambda, Gamma float64
	F             Func
}
