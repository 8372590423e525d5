package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		en = NewEdgeKey([2]int{1<<32 - 1, 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 3}) })
	}
	{ // Exterior edge detection
		ec := make(EdgeCounter)
		shared := NewEdgeKey([2]int{1, 4})
		ec.Add(NewEdgeKey([2]int{0, 1}))
		ec.Add(shared)
		ec.Add(NewEdgeKey([2]int{4, 1}))
		assert.True(t, ec.IsExterior(NewEdgeKey([2]int{1, 0})))
		assert.False(t, ec.IsExterior(shared))
		assert.False(t, ec.IsExterior(NewEdgeKey([2]int{7, 8})))
	}
	{ // Boundary kind parsing
		tokens := []string{"Dirichlet", " NEUMANN", "robin", "3", "0", "mixed"}
		kinds := []BoundaryKind{BC_Dirichlet, BC_Neumann, BC_Newton, BC_Newton, BC_Null, BC_Newton}
		for i, token := range tokens {
			bk, err := ParseBoundaryKind(token)
			assert.NoError(t, err)
			assert.Equal(t, kinds[i], bk)
		}
		_, err := ParseBoundaryKind("wall")
		assert.Error(t, err)
		_, err = ParseBoundaryKind("4")
		assert.Error(t, err)
		assert.Equal(t, "Newton", BC_Newton.String())
	}
}
