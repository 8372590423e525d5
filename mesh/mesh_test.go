package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/types"
)

// rectParams is a pr x pz control grid over [0,pr-1] x [0,pz-1] with Dirichlet on all 4 sides
func rectParams(pr, pz, splits int) Parameters {
	var pts []geometry2D.Point
	for i := 0; i < pz; i++ {
		for j := 0; j < pr; j++ {
			pts = append(pts, geometry2D.NewPoint(float64(j), float64(i)))
		}
	}
	lt, rt := (pz-1)*pr, pz*pr-1
	return Parameters{
		AbscissaPointsCount: pr,
		OrdinatePointsCount: pz,
		ControlPoints:       pts,
		AbscissaSplits:      splits,
		OrdinateSplits:      splits,
		AbscissaK:           1,
		OrdinateK:           1,
		Materials:           []geometry2D.Material{{Lambda: 1}},
		Formulas:            []BoundaryFormula{NewFormula(geometry2D.Const(1))},
		Borders: []Border{
			{Points: [2]int{0, pr - 1}, Kind: types.BC_Dirichlet},
			{Points: [2]int{0, lt}, Kind: types.BC_Dirichlet},
			{Points: [2]int{pr - 1, rt}, Kind: types.BC_Dirichlet},
			{Points: [2]int{lt, rt}, Kind: types.BC_Dirichlet},
		},
	}
}

func TestGeometricFractions(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, GeometricFractions(4, 1))
	assert.Equal(t, []float64{0, 1}, GeometricFractions(1, 3))
	{ // Successive steps grow by k
		var (
			k = 1.5
			f = GeometricFractions(5, k)
		)
		assert.Len(t, f, 6)
		assert.Equal(t, 1., f[5])
		for l := 1; l < 4; l++ {
			assert.InDelta(t, k, (f[l+1]-f[l])/(f[l]-f[l-1]), 1.e-12)
		}
		assert.InDelta(t, (1-k)/(1-math.Pow(k, 5)), f[1], 1.e-15)
	}
	assert.Equal(t, 2., EffectiveRatio(-0.5))
	assert.Equal(t, 0.5, EffectiveRatio(0.5))
}

func TestRefined(t *testing.T) {
	p := rectParams(2, 2, 3)
	p.AbscissaK, p.OrdinateK = 16, -16
	p.Refinement = 2
	r := p.Refined()
	assert.Equal(t, 12, r.AbscissaSplits)
	assert.Equal(t, 12, r.OrdinateSplits)
	assert.InDelta(t, 2., r.AbscissaK, 1.e-14)
	assert.InDelta(t, -2., r.OrdinateK, 1.e-14)
	assert.Equal(t, 0, r.Refinement)
	// The input is left alone
	assert.Equal(t, 3, p.AbscissaSplits)
	{ // Refined spacing keeps the physical stretching: every fourth fine node matches the coarse one
		p = rectParams(2, 2, 2)
		p.AbscissaK = 3
		coarse, err := Build(p)
		require.NoError(t, err)
		p.Refinement = 2
		fine, err := Build(p)
		require.NoError(t, err)
		assert.Equal(t, 9, fine.NR)
		for l := 0; l < coarse.NR; l++ {
			assert.InDelta(t, coarse.Points[l].R, fine.Points[4*l].R, 1.e-13)
		}
	}
}

func TestValidate(t *testing.T) {
	check := func(mod func(p *Parameters)) {
		p := rectParams(3, 3, 2)
		mod(&p)
		_, err := Build(p)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidParameters), err)
	}
	_, err := Build(rectParams(3, 3, 2))
	require.NoError(t, err)
	check(func(p *Parameters) { p.AbscissaPointsCount = 1 })
	check(func(p *Parameters) { p.ControlPoints = p.ControlPoints[:8] })
	check(func(p *Parameters) { p.OrdinateSplits = 0 })
	check(func(p *Parameters) { p.AbscissaK = 0 })
	check(func(p *Parameters) { p.Refinement = -1 })
	check(func(p *Parameters) { p.ControlPoints[0].R = -1 })
	check(func(p *Parameters) { p.ControlPoints[4].Z = 1.5 }) // bent row
	check(func(p *Parameters) { p.ControlPoints[4].R = 0.5 }) // bent column
	check(func(p *Parameters) { p.ControlPoints[1], p.ControlPoints[2] = p.ControlPoints[2], p.ControlPoints[1] })
	check(func(p *Parameters) { p.Materials = nil })
	check(func(p *Parameters) { p.Areas = []Area{{Material: 3, Right: 1, Top: 1}} })
	check(func(p *Parameters) { p.Areas = []Area{{Left: 1, Right: 1, Top: 1}} })
	check(func(p *Parameters) { p.Formulas[0].Value = nil })
	check(func(p *Parameters) { p.Borders[0].Formula = 2 })
	check(func(p *Parameters) { p.Borders[0].Points[1] = 9 })
	check(func(p *Parameters) { p.Borders[0].Kind = types.BC_Newton })
	check(func(p *Parameters) { p.Borders[0].Points = [2]int{0, 4} }) // diagonal
	check(func(p *Parameters) { p.Borders[0].Points = [2]int{3, 5} }) // interior row
	check(func(p *Parameters) { p.Borders[1].Points = [2]int{1, 7} }) // interior column
	check(func(p *Parameters) { p.Borders[0].Kind = types.BoundaryKind(9) })
	{ // A Robin formula makes the Newton border valid
		p := rectParams(3, 3, 2)
		p.Formulas = append(p.Formulas, NewRobinFormula(geometry2D.Const(0), 2))
		p.Borders[2] = Border{Points: [2]int{2, 8}, Kind: types.BC_Newton, Formula: 1}
		m, err := Build(p)
		require.NoError(t, err)
		assert.Len(t, m.Newton, 4)
		for _, bc := range m.Newton {
			assert.Equal(t, 2., bc.Beta)
			assert.Equal(t, BorderRight, bc.LocalBorder)
		}
	}
}

func TestBuildMesh(t *testing.T) {
	p := rectParams(3, 2, 2)
	p.AbscissaK = 2
	m, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, 5, m.NR)
	assert.Equal(t, 3, m.NZ)
	assert.Len(t, m.Points, 15)
	assert.Equal(t, 8, m.NumElements())
	{ // Geometric spacing along r inside each macro interval, uniform along z
		h := 1. / 3.
		assert.InDelta(t, h, m.Points[1].R, 1.e-14)
		assert.InDelta(t, 1., m.Points[2].R, 1.e-14)
		assert.InDelta(t, 1+h, m.Points[3].R, 1.e-14)
		assert.InDelta(t, 0.5, m.Points[5].Z, 1.e-14)
		assert.InDelta(t, h, m.Points[6].R, 1.e-14)
	}
	{ // Corner order and axis aligned rectangles
		for ie, el := range m.Elements {
			lb, rb, lt, rt := m.Points[el.Nodes[0]], m.Points[el.Nodes[1]], m.Points[el.Nodes[2]], m.Points[el.Nodes[3]]
			assert.Equal(t, lb.Z, rb.Z)
			assert.Equal(t, lt.Z, rt.Z)
			assert.Equal(t, lb.R, lt.R)
			assert.Equal(t, rb.R, rt.R)
			assert.Less(t, lb.R, rb.R)
			assert.Less(t, lb.Z, lt.Z)
			r0, r1, z0, z1 := m.ElementRect(ie)
			assert.Equal(t, [4]float64{lb.R, rt.R, lb.Z, rt.Z}, [4]float64{r0, r1, z0, z1})
		}
		assert.Equal(t, [4]int{0, 1, 5, 6}, m.Elements[0].Nodes)
		assert.Equal(t, [4]int{8, 9, 13, 14}, m.Elements[7].Nodes)
	}
	{ // One Dirichlet condition per border element: 4 bottom, 2 left, 2 right, 4 top
		assert.Len(t, m.Dirichlet, 12)
		assert.Empty(t, m.Neumann)
		assert.Empty(t, m.Newton)
		count := make(map[int]int)
		for _, bc := range m.Dirichlet {
			count[bc.LocalBorder]++
		}
		assert.Equal(t, map[int]int{BorderBottom: 4, BorderLeft: 2, BorderRight: 2, BorderTop: 4}, count)
		assert.Equal(t, 7, m.Dirichlet[11].Element)
		assert.Equal(t, BorderTop, m.Dirichlet[11].LocalBorder)
	}
	bb := m.Bounds()
	assert.Equal(t, geometry2D.NewPoint(0, 0), bb.XMin)
	assert.Equal(t, geometry2D.NewPoint(2, 1), bb.XMax)
}

func TestBuildPartialBorders(t *testing.T) {
	p := rectParams(3, 3, 2)
	p.Formulas = append(p.Formulas, NewFormula(geometry2D.Const(5)))
	// Split the bottom side: left half Dirichlet, right half Neumann; the rest is left free
	p.Borders = []Border{
		{Points: [2]int{1, 0}, Kind: types.BC_Dirichlet},
		{Points: [2]int{1, 2}, Kind: types.BC_Neumann, Formula: 1},
		{Points: [2]int{6, 8}, Kind: types.BC_Null},
	}
	m, err := Build(p)
	require.NoError(t, err)
	require.Len(t, m.Dirichlet, 2)
	require.Len(t, m.Neumann, 2)
	assert.Equal(t, 0, m.Dirichlet[0].Element)
	assert.Equal(t, 1, m.Dirichlet[1].Element)
	assert.Equal(t, 2, m.Neumann[0].Element)
	assert.Equal(t, 3, m.Neumann[1].Element)
	assert.Equal(t, 5., m.Neumann[0].Value(0, 0))
}

func TestAreas(t *testing.T) {
	p := rectParams(3, 3, 2)
	p.Materials = append(p.Materials, geometry2D.Material{Lambda: 2}, geometry2D.Material{Lambda: 3})
	p.Areas = []Area{
		{Material: 1, Left: 0, Right: 2, Bottom: 0, Top: 2},
		{Material: 2, Left: 1, Right: 2, Bottom: 1, Top: 2}, // overrides the upper right macro cell
	}
	m, err := Build(p)
	require.NoError(t, err)
	assert.Len(t, m.Elements, 16)
	for ie, el := range m.Elements {
		row, col := ie/4, ie%4
		if row >= 2 && col >= 2 {
			assert.Equal(t, 2, el.Area)
			assert.Equal(t, 3., m.Material(ie).Lambda)
		} else {
			assert.Equal(t, 1, el.Area)
		}
	}
}

func TestBiquadElement(t *testing.T) {
	pts := []geometry2D.Point{{R: 1, Z: 0}, {R: 3, Z: 0}, {R: 1, Z: 2}, {R: 3, Z: 2}}
	el := NewBiquadElement([4]int{0, 1, 2, 3}, 0)
	expected := []geometry2D.Point{
		{R: 1, Z: 0}, {R: 2, Z: 0}, {R: 3, Z: 0},
		{R: 1, Z: 1}, {R: 2, Z: 1}, {R: 3, Z: 1},
		{R: 1, Z: 2}, {R: 2, Z: 2}, {R: 3, Z: 2},
	}
	for local, pos := range expected {
		assert.Equal(t, pos, el.BasisPosition(local, pts))
	}
	assert.Equal(t, []int{0, -1, 1, -1, -1, -1, 2, -1, 3}, func() (n []int) {
		for local := 0; local < NumBasis; local++ {
			n = append(n, el.NodeOfBasis(local))
		}
		return
	}())
	assert.Equal(t, [3]int{0, 1, 2}, BasisOnBorder(BorderBottom))
	assert.Equal(t, [3]int{0, 3, 6}, BasisOnBorder(BorderLeft))
	assert.Equal(t, [3]int{2, 5, 8}, BasisOnBorder(BorderRight))
	assert.Equal(t, [3]int{6, 7, 8}, BasisOnBorder(BorderTop))
	// Border end points are the element edge nodes
	for border, e := range el.Edges {
		on := BasisOnBorder(border)
		assert.Equal(t, pts[e.Node1], el.BasisPosition(on[0], pts))
		assert.Equal(t, pts[e.Node2], el.BasisPosition(on[2], pts))
	}
	el.SetBasis(4, 42)
	assert.Equal(t, 42, el.GlobalBasis(4))
	assert.Panics(t, func() { el.SetBasis(9, 0) })
	assert.Panics(t, func() { BasisOnBorder(4) })
	bb := el.BoundingBox(pts)
	assert.True(t, bb.Contains(geometry2D.NewPoint(2, 1)))
	assert.False(t, bb.Contains(geometry2D.NewPoint(0, 1)))
}
