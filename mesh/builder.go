package mesh

import (
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/types"
)

// Builder turns Parameters into a Mesh: points first, then elements, then boundary lists
type Builder struct {
	params   Parameters // refinement already applied
	ir, iz   []int      // node grid column/row of every control column/row
	nr, nz   int        // node grid dimensions
	points   []geometry2D.Point
	elements []BiquadElement
	edges    types.EdgeCounter

	dirichlet, neumann, newton []BoundaryCondition
}

func NewBuilder(p Parameters) (b *Builder, err error) {
	if err = p.Validate(); err != nil {
		return
	}
	rp := p.Refined()
	b = &Builder{
		params: rp,
		ir:     make([]int, rp.AbscissaPointsCount),
		iz:     make([]int, rp.OrdinatePointsCount),
		nr:     (rp.AbscissaPointsCount-1)*rp.AbscissaSplits + 1,
		nz:     (rp.OrdinatePointsCount-1)*rp.OrdinateSplits + 1,
		edges:  make(types.EdgeCounter),
	}
	for j := range b.ir {
		b.ir[j] = j * rp.AbscissaSplits
	}
	for i := range b.iz {
		b.iz[i] = i * rp.OrdinateSplits
	}
	b.points = make([]geometry2D.Point, b.nr*b.nz)
	return
}

// Build runs every stage and returns the finished mesh
func Build(p Parameters) (m *Mesh, err error) {
	var b *Builder
	if b, err = NewBuilder(p); err != nil {
		return
	}
	b.CreatePoints()
	b.CreateElements()
	if err = b.CreateBoundaries(); err != nil {
		return
	}
	m = b.Mesh()
	return
}

func (b *Builder) nodeIndex(col, row int) int { return row*b.nr + col }

func fillLine(pts []geometry2D.Point, start, stride int, a, c geometry2D.Point, t []float64) {
	for l, frac := range t {
		pts[start+l*stride] = geometry2D.Point{
			R: a.R + frac*(c.R-a.R),
			Z: a.Z + frac*(c.Z-a.Z),
		}
	}
}

func (b *Builder) CreatePoints() {
	var (
		p      = &b.params
		pr, pz = p.AbscissaPointsCount, p.OrdinatePointsCount
		sr     = p.AbscissaSplits
		tr     = GeometricFractions(p.AbscissaSplits, EffectiveRatio(p.AbscissaK))
		tz     = GeometricFractions(p.OrdinateSplits, EffectiveRatio(p.OrdinateK))
	)
	// Main horizontal lines through the control rows
	for i := 0; i < pz; i++ {
		for j := 0; j < pr-1; j++ {
			fillLine(b.points, b.nodeIndex(b.ir[j], b.iz[i]), 1,
				p.controlPoint(i, j), p.controlPoint(i, j+1), tr)
		}
	}
	// Main vertical lines through the control columns
	for j := 0; j < pr; j++ {
		for i := 0; i < pz-1; i++ {
			fillLine(b.points, b.nodeIndex(b.ir[j], b.iz[i]), b.nr,
				p.controlPoint(i, j), p.controlPoint(i+1, j), tz)
		}
	}
	// Inner rows, interpolated between the vertical lines
	for row := 0; row < b.nz; row++ {
		if row%p.OrdinateSplits == 0 {
			continue
		}
		for j := 0; j < pr-1; j++ {
			start := b.nodeIndex(b.ir[j], row)
			fillLine(b.points, start, 1, b.points[start], b.points[start+sr], tr)
		}
	}
}

// areaOf returns the material of the macro cell containing element cell (col,row)
func (b *Builder) areaOf(col, row int) (area int) {
	var (
		cx = col / b.params.AbscissaSplits
		cy = row / b.params.OrdinateSplits
	)
	for _, a := range b.params.Areas {
		if cx >= a.Left && cx < a.Right && cy >= a.Bottom && cy < a.Top {
			area = a.Material
		}
	}
	return
}

func (b *Builder) CreateElements() {
	b.elements = make([]BiquadElement, 0, (b.nr-1)*(b.nz-1))
	for row := 0; row < b.nz-1; row++ {
		for col := 0; col < b.nr-1; col++ {
			el := NewBiquadElement([4]int{
				b.nodeIndex(col, row),     // left bottom
				b.nodeIndex(col+1, row),   // right bottom
				b.nodeIndex(col, row+1),   // left top
				b.nodeIndex(col+1, row+1), // right top
			}, b.areaOf(col, row))
			for _, e := range el.Edges {
				b.edges.Add(e.Key())
			}
			b.elements = append(b.elements, el)
		}
	}
}

func (b *Builder) CreateBoundaries() (err error) {
	for i, border := range b.params.Borders {
		switch border.Kind {
		case types.BC_Null:
			continue
		case types.BC_Dirichlet:
			b.dirichlet, err = b.processBorder(i, border, b.dirichlet)
		case types.BC_Neumann:
			b.neumann, err = b.processBorder(i, border, b.neumann)
		case types.BC_Newton:
			b.newton, err = b.processBorder(i, border, b.newton)
		}
		if err != nil {
			return
		}
	}
	return
}

// processBorder walks the chain of elements along one border segment and emits one condition per element
func (b *Builder) processBorder(ib int, border Border, conds []BoundaryCondition) (out []BoundaryCondition, err error) {
	var (
		pr      = b.params.AbscissaPointsCount
		formula = b.params.Formulas[border.Formula]
		p0, p1  = border.Points[0], border.Points[1]
		xs, xe  = b.ir[p0%pr], b.ir[p1%pr]
		ys, ye  = b.iz[p0/pr], b.iz[p1/pr]
		nex     = b.nr - 1 // elements per row
		local   int
		cells   [][2]int // element cell (col,row) and the walked node pair start
	)
	if xe < xs {
		xs, xe = xe, xs
	}
	if ye < ys {
		ys, ye = ye, ys
	}
	switch {
	case ys == ye && xs != xe: // horizontal
		erow := 0
		switch ys {
		case 0:
			local = BorderBottom
		case b.nz - 1:
			local, erow = BorderTop, b.nz-2
		default:
			return conds, invalid("border %d runs through the domain interior at node row %d", ib, ys)
		}
		for col := xs; col < xe; col++ {
			cells = append(cells, [2]int{col, erow})
		}
	case xs == xe && ys != ye: // vertical
		ecol := 0
		switch xs {
		case 0:
			local = BorderLeft
		case b.nr - 1:
			local, ecol = BorderRight, b.nr-2
		default:
			return conds, invalid("border %d runs through the domain interior at node column %d", ib, xs)
		}
		for row := ys; row < ye; row++ {
			cells = append(cells, [2]int{ecol, row})
		}
	default:
		return conds, invalid("border %d between control points %d and %d is not an axis aligned segment", ib, p0, p1)
	}
	out = conds
	for _, cell := range cells {
		var (
			ie   = cell[1]*nex + cell[0]
			edge = b.elements[ie].Edges[local]
			walk geometry2D.Edge
		)
		if local == BorderBottom || local == BorderTop {
			row := ys
			walk = geometry2D.NewEdge(b.nodeIndex(cell[0], row), b.nodeIndex(cell[0]+1, row))
		} else {
			col := xs
			walk = geometry2D.NewEdge(b.nodeIndex(col, cell[1]), b.nodeIndex(col, cell[1]+1))
		}
		if !edge.Equal(walk) || !b.edges.IsExterior(edge.Key()) {
			return conds, invalid("border %d: element %d edge %v is not on the domain boundary", ib, ie, edge)
		}
		bc := BoundaryCondition{
			Element:     ie,
			LocalBorder: local,
			Value:       formula.Value,
		}
		if formula.IsRobin() {
			bc.Beta = formula.Beta
		}
		out = append(out, bc)
	}
	return
}

func (b *Builder) Mesh() *Mesh {
	return &Mesh{
		Points:    b.points,
		Elements:  b.elements,
		Materials: b.params.Materials,
		Dirichlet: b.dirichlet,
		Neumann:   b.neumann,
		Newton:    b.newton,
		NR:        b.nr,
		NZ:        b.nz,
	}
}
