package portrait

import (
	"sort"

	"github.com/thegrosss/FEM-Course-Project/mesh"
)

// Build computes the lower triangle connectivity of a numbered mesh as row pointers and
// column indices: row i lists, ascending and once each, every j < i sharing an element with i
func Build(m *mesh.Mesh) (ig, jg []int) {
	var (
		N    = FunctionCount(m)
		rows = make([][]int, N)
	)
	for ie := range m.Elements {
		basis := m.Elements[ie].Basis
		for _, i := range basis {
			for _, j := range basis {
				if j < i {
					rows[i] = insertSorted(rows[i], j)
				}
			}
		}
	}
	ig = make([]int, N+1)
	for i, row := range rows {
		ig[i+1] = ig[i] + len(row)
	}
	jg = make([]int, 0, ig[N])
	for _, row := range rows {
		jg = append(jg, row...)
	}
	return
}

func insertSorted(row []int, j int) []int {
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return row
	}
	row = append(row, 0)
	copy(row[k+1:], row[k:])
	row[k] = j
	return row
}
