package Axisymmetric

import (
	"fmt"
	"math"
	"sort"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/types"
)

// Case is a manufactured problem: mesh parameters plus the exact solution they were built from
type Case struct {
	Name, Description string
	Params            mesh.Parameters
	Exact             geometry2D.Func
}

// Rectangle lays a pr x pz control grid evenly over [r0,r1] x [z0,z1]
func Rectangle(pr, pz int, r0, r1, z0, z1 float64) (pts []geometry2D.Point) {
	pts = make([]geometry2D.Point, 0, pr*pz)
	for i := 0; i < pz; i++ {
		z := z0 + float64(i)*(z1-z0)/float64(pz-1)
		for j := 0; j < pr; j++ {
			pts = append(pts, geometry2D.NewPoint(r0+float64(j)*(r1-r0)/float64(pr-1), z))
		}
	}
	return
}

// Sides returns the bottom, left, right and top borders of a pr x pz control grid, with the given kinds and formulas
func Sides(pr, pz int, kinds [4]types.BoundaryKind, formulas [4]int) (borders []mesh.Border) {
	var (
		lb, rb = 0, pr - 1
		lt, rt = (pz - 1) * pr, pz*pr - 1
		ends   = [4][2]int{{lb, rb}, {lb, lt}, {rb, rt}, {lt, rt}}
	)
	for i := range ends {
		borders = append(borders, mesh.Border{Points: ends[i], Kind: kinds[i], Formula: formulas[i]})
	}
	return
}

func allDirichlet(pr, pz int) []mesh.Border {
	return Sides(pr, pz, [4]types.BoundaryKind{
		types.BC_Dirichlet, types.BC_Dirichlet, types.BC_Dirichlet, types.BC_Dirichlet,
	}, [4]int{})
}

// Linear is u = z with Dirichlet data on every side of the unit square. A field linear in r
// is not harmonic under the axisymmetric operator, one linear in z is.
func Linear(splits, refinement int) Case {
	exact := func(r, z float64) float64 { return z }
	return Case{
		Name:        "linear",
		Description: "u = z, unit square touching the axis, Dirichlet on all sides",
		Exact:       exact,
		Params: mesh.Parameters{
			AbscissaPointsCount: 3,
			OrdinatePointsCount: 3,
			ControlPoints:       Rectangle(3, 3, 0, 1, 0, 1),
			AbscissaSplits:      splits,
			OrdinateSplits:      splits,
			AbscissaK:           1,
			OrdinateK:           1,
			Refinement:          refinement,
			Materials:           []geometry2D.Material{{Lambda: 1, F: geometry2D.Const(0)}},
			Formulas:            []mesh.BoundaryFormula{mesh.NewFormula(exact)},
			Borders:             allDirichlet(3, 3),
		},
	}
}

// Quadratic is u = r^2 + z^2 with a reaction term on a mesh stretched along both axes
func Quadratic(splits, refinement int) Case {
	var (
		lambda, gamma = 2., 1.
		exact         = func(r, z float64) float64 { return r*r + z*z }
	)
	return Case{
		Name:        "quadratic",
		Description: "u = r^2 + z^2, lambda = 2, gamma = 1, stretched mesh on [1,2] x [0,1]",
		Exact:       exact,
		Params: mesh.Parameters{
			AbscissaPointsCount: 3,
			OrdinatePointsCount: 2,
			ControlPoints:       Rectangle(3, 2, 1, 2, 0, 1),
			AbscissaSplits:      splits,
			OrdinateSplits:      splits,
			AbscissaK:           1.3,
			OrdinateK:           -1.2,
			Refinement:          refinement,
			Materials: []geometry2D.Material{{
				Lambda: lambda,
				Gamma:  gamma,
				F: func(r, z float64) float64 {
					return -6*lambda + gamma*exact(r, z)
				},
			}},
			Formulas: []mesh.BoundaryFormula{mesh.NewFormula(exact)},
			Borders:  allDirichlet(3, 2),
		},
	}
}

/*
Mixed is u = r^2 on [1,2] x [0,1] with one kind of condition per side:

	bottom  Dirichlet  u = r^2
	left    Neumann    lambda du/dn = -2 lambda r = -2
	right   Newton     beta (u_beta - u) = 2 lambda r, beta = 2
	top     Neumann    zero flux
*/
func Mixed(splits, refinement int) Case {
	var (
		lambda, beta = 1., 2.
		exact        = func(r, z float64) float64 { return r * r }
	)
	return Case{
		Name:        "mixed",
		Description: "u = r^2 on [1,2] x [0,1], Dirichlet, Neumann and Newton borders",
		Exact:       exact,
		Params: mesh.Parameters{
			AbscissaPointsCount: 2,
			OrdinatePointsCount: 2,
			ControlPoints:       Rectangle(2, 2, 1, 2, 0, 1),
			AbscissaSplits:      splits,
			OrdinateSplits:      splits,
			AbscissaK:           1,
			OrdinateK:           1,
			Refinement:          refinement,
			Materials:           []geometry2D.Material{{Lambda: lambda, F: geometry2D.Const(-4 * lambda)}},
			Formulas: []mesh.BoundaryFormula{
				mesh.NewFormula(exact),
				mesh.NewFormula(func(r, z float64) float64 { return -2 * lambda * r }),
				mesh.NewRobinFormula(func(r, z float64) float64 { return r*r + 2*lambda*r/beta }, beta),
				mesh.NewFormula(geometry2D.Const(0)),
			},
			Borders: Sides(2, 2, [4]types.BoundaryKind{
				types.BC_Dirichlet, types.BC_Neumann, types.BC_Newton, types.BC_Neumann,
			}, [4]int{0, 1, 2, 3}),
		},
	}
}

// Layered is u = z over two materials stacked along z, the upper one carrying a reaction term
func Layered(splits, refinement int) Case {
	exact := func(r, z float64) float64 { return z }
	return Case{
		Name:        "layered",
		Description: "u = z on [0,1] x [0,2], gamma = 0 below z = 1 and gamma = 2 above",
		Exact:       exact,
		Params: mesh.Parameters{
			AbscissaPointsCount: 2,
			OrdinatePointsCount: 3,
			ControlPoints:       Rectangle(2, 3, 0, 1, 0, 2),
			AbscissaSplits:      splits,
			OrdinateSplits:      splits,
			AbscissaK:           1,
			OrdinateK:           1,
			Refinement:          refinement,
			Materials: []geometry2D.Material{
				{Lambda: 1, F: geometry2D.Const(0)},
				{Lambda: 1, Gamma: 2, F: func(r, z float64) float64 { return 2 * z }},
			},
			Areas:    []mesh.Area{{Material: 1, Left: 0, Right: 1, Bottom: 1, Top: 2}},
			Formulas: []mesh.BoundaryFormula{mesh.NewFormula(exact)},
			Borders:  allDirichlet(2, 3),
		},
	}
}

// Smooth is u = exp(r) sin(z) on [1,2] x [0,1], outside the discrete space, for convergence studies
func Smooth(splits, refinement int) Case {
	exact := func(r, z float64) float64 { return math.Exp(r) * math.Sin(z) }
	return Case{
		Name:        "smooth",
		Description: "u = exp(r) sin(z) on [1,2] x [0,1], Dirichlet on all sides",
		Exact:       exact,
		Params: mesh.Parameters{
			AbscissaPointsCount: 2,
			OrdinatePointsCount: 2,
			ControlPoints:       Rectangle(2, 2, 1, 2, 0, 1),
			AbscissaSplits:      splits,
			OrdinateSplits:      splits,
			AbscissaK:           1,
			OrdinateK:           1,
			Refinement:          refinement,
			Materials: []geometry2D.Material{{
				Lambda: 1,
				F:      func(r, z float64) float64 { return -exact(r, z) / r },
			}},
			Formulas: []mesh.BoundaryFormula{mesh.NewFormula(exact)},
			Borders:  allDirichlet(2, 2),
		},
	}
}

var registry = map[string]func(splits, refinement int) Case{
	"linear":    Linear,
	"quadratic": Quadratic,
	"mixed":     Mixed,
	"layered":   Layered,
	"smooth":    Smooth,
}

// Names lists the built in cases in sorted order
func Names() (names []string) {
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func Lookup(name string, splits, refinement int) (c Case, err error) {
	ctor, ok := registry[name]
	if !ok {
		err = fmt.Errorf("unknown case %q, available: %v", name, Names())
		return
	}
	c = ctor(splits, refinement)
	return
}
