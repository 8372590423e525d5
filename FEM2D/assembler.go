package FEM2D

import (
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/portrait"
	"github.com/thegrosss/FEM-Course-Project/utils"
	"gonum.org/v1/gonum/mat"
)

/*
Assembler builds the global system of the axisymmetric problem

	-(1/r) d/dr(lambda r du/dr) - d/dz(lambda du/dz) + gamma u = f

on a numbered mesh. The portrait is computed once, values are rebuilt on every Assemble.
*/
type Assembler struct {
	Mesh   *mesh.Mesh
	Matrix *utils.SymSparse
	RHS    []float64
}

// NewAssembler expects the mesh to be numbered already (portrait.Numerate)
func NewAssembler(m *mesh.Mesh) *Assembler {
	ig, jg := portrait.Build(m)
	A := utils.NewSymSparse(ig, jg)
	return &Assembler{
		Mesh:   m,
		Matrix: A,
		RHS:    make([]float64, A.Size()),
	}
}

// Assemble runs the interior assembly, then the Newton and Neumann borders, and the
// Dirichlet elimination last since it overwrites rows and must see every other contribution
func (as *Assembler) Assemble() (*utils.SymSparse, []float64) {
	as.AssembleInterior()
	as.ApplyNewton()
	as.ApplyNeumann()
	as.ApplyDirichlet()
	return as.Matrix, as.RHS
}

// LocalSystem holds the stiffness and mass matrices and the source vector of one element
type LocalSystem struct {
	G, M *mat.SymDense
	B    []float64
}

func (as *Assembler) LocalSystem(ie int) (ls LocalSystem) {
	var (
		rect   = ElementRect(as.Mesh, ie)
		src    = as.Mesh.Material(ie).F
		fLocal = mat.NewVecDense(mesh.NumBasis, nil)
		b      mat.VecDense
	)
	ls.G = mat.NewSymDense(mesh.NumBasis, nil)
	ls.M = mat.NewSymDense(mesh.NumBasis, nil)
	for i := 0; i < mesh.NumBasis; i++ {
		for j := 0; j <= i; j++ {
			g := Integrate2D(func(r, z float64) float64 {
				return (rect.DPsiDR(i, r, z)*rect.DPsiDR(j, r, z) +
					rect.DPsiDZ(i, r, z)*rect.DPsiDZ(j, r, z)) * r
			}, rect.R0, rect.R1, rect.Z0, rect.Z1)
			m := Integrate2D(func(r, z float64) float64 {
				return rect.Psi(i, r, z) * rect.Psi(j, r, z) * r
			}, rect.R0, rect.R1, rect.Z0, rect.Z1)
			ls.G.SetSym(i, j, g)
			ls.M.SetSym(i, j, m)
		}
	}
	if src != nil {
		for i := 0; i < mesh.NumBasis; i++ {
			p := as.Mesh.BasisPosition(ie, i)
			fLocal.SetVec(i, src(p.R, p.Z))
		}
	}
	b.MulVec(ls.M, fLocal)
	ls.B = b.RawVector().Data
	return
}

// scatter adds a symmetric local matrix, addressing the global lower triangle only
func (as *Assembler) scatter(global []int, value func(i, j int) float64) {
	for i, gi := range global {
		for j, gj := range global {
			if gi >= gj {
				as.Matrix.Add(gi, gj, value(i, j))
			}
		}
	}
}

func (as *Assembler) AssembleInterior() {
	as.Matrix.Clear()
	for i := range as.RHS {
		as.RHS[i] = 0
	}
	for ie := range as.Mesh.Elements {
		var (
			mtl    = as.Mesh.Material(ie)
			ls     = as.LocalSystem(ie)
			global = as.Mesh.Elements[ie].Basis
		)
		for i, gi := range global {
			as.RHS[gi] += ls.B[i]
		}
		as.scatter(global[:], func(i, j int) float64 {
			return mtl.Lambda*ls.G.At(i, j) + mtl.Gamma*ls.M.At(i, j)
		})
	}
}

// borderGeometry describes one element border: its basis functions, global indices, end points and direction
type borderGeometry struct {
	local      [3]int
	global     []int
	nodes      [3]geometry2D.Point
	start, end geometry2D.Point
	alongZ     bool // left and right borders run along z at constant r
}

func (as *Assembler) border(bc mesh.BoundaryCondition) (bg borderGeometry) {
	el := &as.Mesh.Elements[bc.Element]
	bg.local = mesh.BasisOnBorder(bc.LocalBorder)
	bg.global = make([]int, 3)
	for i, lb := range bg.local {
		bg.global[i] = el.GlobalBasis(lb)
		bg.nodes[i] = el.BasisPosition(lb, as.Mesh.Points)
	}
	bg.start, bg.end = bg.nodes[0], bg.nodes[2]
	bg.alongZ = bc.LocalBorder == mesh.BorderLeft || bc.LocalBorder == mesh.BorderRight
	return
}

// psi is the 1D quadratic function fn along the border, evaluated at (r,z) on it
func (bg borderGeometry) psi(fn int, r, z float64) float64 {
	if bg.alongZ {
		return Psi1D(fn, bg.start.Z, bg.end.Z, z)
	}
	return Psi1D(fn, bg.start.R, bg.end.R, r)
}

// integrate computes the line integral of g(r,z)*r over the border. Along z the radius is the
// constant border radius; along r it varies and stays inside the integral.
func (bg borderGeometry) integrate(g func(r, z float64) float64) float64 {
	if bg.alongZ {
		rk := bg.start.R
		return rk * Integrate1D(func(z float64) float64 { return g(rk, z) }, bg.start.Z, bg.end.Z)
	}
	zk := bg.start.Z
	return Integrate1D(func(r float64) float64 { return r * g(r, zk) }, bg.start.R, bg.end.R)
}

// ApplyNewton adds beta*(u_beta - u) borders to both the matrix and the right hand side
func (as *Assembler) ApplyNewton() {
	for _, bc := range as.Mesh.Newton {
		var (
			bg   = as.border(bc)
			Mb   = mat.NewSymDense(3, nil)
			flux = mat.NewVecDense(3, nil)
			b    mat.VecDense
		)
		for i := 0; i < 3; i++ {
			for j := 0; j <= i; j++ {
				Mb.SetSym(i, j, bc.Beta*bg.integrate(func(r, z float64) float64 {
					return bg.psi(i, r, z) * bg.psi(j, r, z)
				}))
			}
			flux.SetVec(i, bc.Value(bg.nodes[i].R, bg.nodes[i].Z))
		}
		b.MulVec(Mb, flux)
		for i, gi := range bg.global {
			as.RHS[gi] += b.AtVec(i)
		}
		as.scatter(bg.global, Mb.At)
	}
}

// ApplyNeumann adds the prescribed flux to the right hand side only
func (as *Assembler) ApplyNeumann() {
	for _, bc := range as.Mesh.Neumann {
		bg := as.border(bc)
		for i, gi := range bg.global {
			as.RHS[gi] += bg.integrate(func(r, z float64) float64 {
				return bc.Value(r, z) * bg.psi(i, r, z)
			})
		}
	}
}

// DirichletValues collects one (global index, value) pair per constrained basis function,
// the first border touching a function decides its value
func (as *Assembler) DirichletValues() (nodes []int, values []float64) {
	seen := make(map[int]bool)
	for _, bc := range as.Mesh.Dirichlet {
		bg := as.border(bc)
		for i, gi := range bg.global {
			if seen[gi] {
				continue
			}
			seen[gi] = true
			nodes = append(nodes, gi)
			values = append(values, bc.Value(bg.nodes[i].R, bg.nodes[i].Z))
		}
	}
	return
}

/*
ApplyDirichlet eliminates the constrained unknowns symmetrically. A constrained row gets a unit
diagonal, its value on the right hand side and a zeroed row, each zeroed entry moving into the
right hand side of the free unknown it couples to. A free row moves its entries on constrained
columns into its own right hand side. Only the lower triangle is stored, so both sweeps are
needed to reach every coupling. Applying it twice changes nothing.
*/
func (as *Assembler) ApplyDirichlet() {
	var (
		A             = as.Matrix
		b             = as.RHS
		nodes, values = as.DirichletValues()
		fixed         = make([]int, A.Size())
	)
	for i := range fixed {
		fixed[i] = -1
	}
	for k, node := range nodes {
		fixed[node] = k
	}
	for i := range fixed {
		if k := fixed[i]; k >= 0 {
			v := values[k]
			A.DI[i] = 1
			b[i] = v
			for s := A.IG[i]; s < A.IG[i+1]; s++ {
				if j := A.JG[s]; fixed[j] < 0 {
					b[j] -= A.GG[s] * v
				}
				A.GG[s] = 0
			}
		} else {
			for s := A.IG[i]; s < A.IG[i+1]; s++ {
				if kj := fixed[A.JG[s]]; kj >= 0 {
					b[i] -= A.GG[s] * values[kj]
					A.GG[s] = 0
				}
			}
		}
	}
}
