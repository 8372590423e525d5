package portrait

import (
	"fmt"

	"github.com/thegrosss/FEM-Course-Project/mesh"
)

/*
Numerate assigns global basis indices on a structured grid of NR x NZ corner nodes.

The corner, mid-edge and center nodes together form a finer lattice of (2NR-1) x (2NZ-1)
points, numbered row by row. Element (row, col) owns the 3x3 block of that lattice starting
at lattice row 2*row, column 2*col, so neighbours sharing an edge share its three indices.
This relies on the structured layout and is not a general renumbering pass.
*/
func Numerate(m *mesh.Mesh) {
	var (
		nx    = m.NR
		nex   = nx - 1
		width = 2*nx - 1 // lattice points per row
	)
	if nex < 1 || len(m.Elements) != nex*(m.NZ-1) {
		panic(fmt.Errorf("mesh is not a structured %dx%d grid: %d elements", m.NR, m.NZ, len(m.Elements)))
	}
	for ie := range m.Elements {
		var (
			el = &m.Elements[ie]
			k  = 2*(ie/nex)*width + 2*(ie%nex)
		)
		for iz := 0; iz < 3; iz++ {
			for ir := 0; ir < 3; ir++ {
				el.SetBasis(3*iz+ir, k+iz*width+ir)
			}
		}
	}
}

// FunctionCount is the number of global basis functions, read off the last local index of the last element
func FunctionCount(m *mesh.Mesh) int {
	if len(m.Elements) == 0 {
		return 0
	}
	return m.Elements[len(m.Elements)-1].Basis[mesh.NumBasis-1] + 1
}
