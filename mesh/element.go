package mesh

import (
	"fmt"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
)

// Local border ids, in the order the element edges are stored
const (
	BorderBottom = iota
	BorderLeft
	BorderRight
	BorderTop
	NumBorders
)

// NumBasis is the number of local basis functions of the biquadratic quad
const NumBasis = 9

var (
	// local basis indices lying on each border, ordered along the border
	basisOnBorders = [NumBorders][3]int{
		{0, 1, 2}, // bottom
		{0, 3, 6}, // left
		{2, 5, 8}, // right
		{6, 7, 8}, // top
	}
	// corner slot for the 4 basis functions sitting on physical nodes, -1 otherwise
	basisToCorner = [NumBasis]int{0, -1, 1, -1, -1, -1, 2, -1, 3}
	// corner pair spanning each mid-edge basis function
	midEdgeCorners = [NumBasis][2]int{
		{-1, -1}, {0, 1}, {-1, -1},
		{0, 2}, {-1, -1}, {1, 3},
		{-1, -1}, {2, 3}, {-1, -1},
	}
)

/*
BiquadElement is a 9 basis function rectangular element.

	Corners (physical nodes):   2 --- 3      Local basis:   6  7  8
	                            |     |                     3  4  5
	                            0 --- 1                     0  1  2
*/
type BiquadElement struct {
	Nodes [4]int                      // left-bottom, right-bottom, left-top, right-top
	Area  int                         // material index
	Basis [NumBasis]int               // global basis index of each local basis function
	Edges [NumBorders]geometry2D.Edge // bottom, left, right, top
}

func NewBiquadElement(nodes [4]int, area int) (el BiquadElement) {
	el = BiquadElement{
		Nodes: nodes,
		Area:  area,
		Edges: [NumBorders]geometry2D.Edge{
			geometry2D.NewEdge(nodes[0], nodes[1]),
			geometry2D.NewEdge(nodes[0], nodes[2]),
			geometry2D.NewEdge(nodes[1], nodes[3]),
			geometry2D.NewEdge(nodes[2], nodes[3]),
		},
	}
	return
}

// BasisOnBorder returns the local basis indices on a border, ordered from the border start
func BasisOnBorder(border int) [3]int {
	if border < 0 || border >= NumBorders {
		panic(fmt.Errorf("local border index out of range: %d", border))
	}
	return basisOnBorders[border]
}

func checkLocal(local int) {
	if local < 0 || local >= NumBasis {
		panic(fmt.Errorf("local basis index out of range: %d", local))
	}
}

// NodeOfBasis returns the physical node carrying a local basis function, -1 for mid-edge and center functions
func (el *BiquadElement) NodeOfBasis(local int) int {
	checkLocal(local)
	corner := basisToCorner[local]
	if corner == -1 {
		return -1
	}
	return el.Nodes[corner]
}

func (el *BiquadElement) SetBasis(local, global int) {
	checkLocal(local)
	el.Basis[local] = global
}

func (el *BiquadElement) GlobalBasis(local int) int {
	checkLocal(local)
	return el.Basis[local]
}

// BasisPosition computes the position of a local basis node from the corner coordinates
func (el *BiquadElement) BasisPosition(local int, pts []geometry2D.Point) geometry2D.Point {
	checkLocal(local)
	if corner := basisToCorner[local]; corner != -1 {
		return pts[el.Nodes[corner]]
	}
	if pair := midEdgeCorners[local]; pair[0] != -1 {
		return geometry2D.Mid(pts[el.Nodes[pair[0]]], pts[el.Nodes[pair[1]]])
	}
	return geometry2D.Centroid(pts[el.Nodes[0]], pts[el.Nodes[1]], pts[el.Nodes[2]], pts[el.Nodes[3]])
}

func (el *BiquadElement) BoundingBox(pts []geometry2D.Point) *geometry2D.BoundingBox {
	return &geometry2D.BoundingBox{XMin: pts[el.Nodes[0]], XMax: pts[el.Nodes[3]]}
}

func (el *BiquadElement) String() string {
	return fmt.Sprintf("BiquadElement(nodes=%v, area=%d)", el.Nodes, el.Area)
}
