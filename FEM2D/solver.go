package FEM2D

import (
	"io"
	"math"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/portrait"
	"github.com/thegrosss/FEM-Course-Project/utils"
)

// OutsideMesh is returned by ValueAt for points not covered by any element
var OutsideMesh = math.Inf(-1)

func IsOutside(v float64) bool { return math.IsInf(v, -1) }

type Solver struct {
	Mesh      *mesh.Mesh
	Assembler *Assembler
	LOS       utils.LOS
	Result    utils.LOSResult
	Solution  []float64
}

// NewSolver numbers the mesh basis functions and allocates the system over its portrait
func NewSolver(m *mesh.Mesh, los utils.LOS) (s *Solver) {
	portrait.Numerate(m)
	s = &Solver{
		Mesh:      m,
		Assembler: NewAssembler(m),
		LOS:       los,
	}
	return
}

// Solve assembles and solves the system, non convergence is reported through Result
func (s *Solver) Solve() (A *utils.SymSparse, b, x []float64) {
	A, b = s.Assembler.Assemble()
	s.Result = s.LOS.Solve(A, b)
	s.Solution = s.Result.X
	return A, b, s.Solution
}

// FindElement returns the first element whose rectangle holds (r,z), -1 if none does
func (s *Solver) FindElement(r, z float64) int {
	for ie := range s.Mesh.Elements {
		if ElementRect(s.Mesh, ie).Contains(r, z) {
			return ie
		}
	}
	return -1
}

// ValueAt evaluates the discrete solution, OutsideMesh when (r,z) is not on the mesh
func (s *Solver) ValueAt(r, z float64) (u float64) {
	if s.Solution == nil {
		panic("ValueAt called before Solve")
	}
	ie := s.FindElement(r, z)
	if ie < 0 {
		return OutsideMesh
	}
	var (
		rect = ElementRect(s.Mesh, ie)
		el   = &s.Mesh.Elements[ie]
	)
	for i, gi := range el.Basis {
		u += s.Solution[gi] * rect.Psi(i, r, z)
	}
	return
}

// NodePositions gives the position of every global basis function, by global index
func (s *Solver) NodePositions() (pts []geometry2D.Point) {
	pts = make([]geometry2D.Point, portrait.FunctionCount(s.Mesh))
	for ie := range s.Mesh.Elements {
		for i, gi := range s.Mesh.Elements[ie].Basis {
			pts[gi] = s.Mesh.BasisPosition(ie, i)
		}
	}
	return
}

type Sample struct {
	Pos   geometry2D.Point
	Value float64
}

// Samples pairs each basis node with its solution value, ordered by global index
func (s *Solver) Samples() (samples []Sample) {
	pts := s.NodePositions()
	samples = make([]Sample, len(pts))
	for i, p := range pts {
		samples[i] = Sample{Pos: p, Value: s.Solution[i]}
	}
	return
}

// Nodes returns the physical corner nodes
func (s *Solver) Nodes() []geometry2D.Point { return s.Mesh.Points }

func (s *Solver) ElementCorners() [][4]int { return s.Mesh.ElementCorners() }

// NodalError is the relative l2 error of the solution against exact at every basis node
func (s *Solver) NodalError(exact geometry2D.Func) float64 {
	var (
		pts = s.NodePositions()
		ref = make([]float64, len(pts))
	)
	for i, p := range pts {
		ref[i] = exact(p.R, p.Z)
	}
	return utils.RelativeNorm(s.Solution, ref)
}

// SampleError is the relative error over arbitrary points, those outside the mesh are skipped and counted
func (s *Solver) SampleError(exact geometry2D.Func, pts []geometry2D.Point) (rel float64, outside int) {
	var (
		approx = make([]float64, 0, len(pts))
		ref    = make([]float64, 0, len(pts))
	)
	for _, p := range pts {
		u := s.ValueAt(p.R, p.Z)
		if IsOutside(u) {
			outside++
			continue
		}
		approx = append(approx, u)
		ref = append(ref, exact(p.R, p.Z))
	}
	if len(ref) == 0 {
		return math.NaN(), outside
	}
	return utils.RelativeNorm(approx, ref), outside
}

// DumpDense writes the assembled matrix in dense form
func (s *Solver) DumpDense(w io.Writer) error {
	return s.Assembler.Matrix.DumpDense(w)
}

// ExactSolution picks the reference solution for error reports: exact when given, otherwise the
// value of the first Dirichlet border, nil when neither exists
func (s *Solver) ExactSolution(exact geometry2D.Func) geometry2D.Func {
	if exact != nil {
		return exact
	}
	if len(s.Mesh.Dirichlet) > 0 {
		return s.Mesh.Dirichlet[0].Value
	}
	return nil
}
