package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/types"
)

const (
	DefaultMaxIterations = 10000
	DefaultTolerance     = 1.e-20
)

type MaterialInput struct {
	Lambda float64 `json:"Lambda"`
	Gamma  float64 `json:"Gamma"`
	F      string  `json:"F"` // source formula, zero when empty
}

type FormulaInput struct {
	Value string   `json:"Value"`
	Beta  *float64 `json:"Beta,omitempty"` // present for Robin formulas
}

type BorderInput struct {
	Points  [2]int `json:"Points"`
	Kind    string `json:"Kind"`
	Formula int    `json:"Formula"`
}

type SolverInput struct {
	MaxIterations int     `json:"MaxIterations"`
	Tolerance     float64 `json:"Tolerance"`
}

// ProblemParameters is the YAML problem description
type ProblemParameters struct {
	Title               string          `json:"Title"`
	AbscissaPointsCount int             `json:"AbscissaPointsCount"`
	OrdinatePointsCount int             `json:"OrdinatePointsCount"`
	ControlPoints       [][2]float64    `json:"ControlPoints"` // (r, z) row by row
	AbscissaSplits      int             `json:"AbscissaSplits"`
	OrdinateSplits      int             `json:"OrdinateSplits"`
	AbscissaK           float64         `json:"AbscissaK"`
	OrdinateK           float64         `json:"OrdinateK"`
	Refinement          int             `json:"Refinement"`
	Materials           []MaterialInput `json:"Materials"`
	Areas               []mesh.Area     `json:"Areas"`
	Formulas            []FormulaInput  `json:"Formulas"`
	Borders             []BorderInput   `json:"Borders"`
	Exact               string          `json:"Exact"`
	Solver              SolverInput     `json:"Solver"`
}

func (pp *ProblemParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

func (pp *ProblemParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("[%d x %d]\t\t= Control Grid\n", pp.AbscissaPointsCount, pp.OrdinatePointsCount)
	fmt.Printf("[%d, %d]\t\t\t= Splits\n", pp.AbscissaSplits, pp.OrdinateSplits)
	fmt.Printf("[%8.5f, %8.5f]\t= Ratios\n", pp.AbscissaK, pp.OrdinateK)
	fmt.Printf("[%d]\t\t\t\t= Refinement\n", pp.Refinement)
	for i, m := range pp.Materials {
		fmt.Printf("Materials[%d] = lambda %g, gamma %g, f = %q\n", i, m.Lambda, m.Gamma, m.F)
	}
	for i, f := range pp.Formulas {
		if f.Beta != nil {
			fmt.Printf("Formulas[%d] = %q, beta %g\n", i, f.Value, *f.Beta)
		} else {
			fmt.Printf("Formulas[%d] = %q\n", i, f.Value)
		}
	}
	for i, b := range pp.Borders {
		fmt.Printf("Borders[%d] = %v %s, formula %d\n", i, b.Points, b.Kind, b.Formula)
	}
	if pp.Exact != "" {
		fmt.Printf("%q\t\t= Exact\n", pp.Exact)
	}
}

// SolverSettings fills unset solver fields with the defaults
func (pp *ProblemParameters) SolverSettings() (maxIterations int, tolerance float64) {
	maxIterations, tolerance = pp.Solver.MaxIterations, pp.Solver.Tolerance
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return
}

// ExactSolution compiles the Exact formula, nil when the problem has none
func (pp *ProblemParameters) ExactSolution() (f geometry2D.Func, err error) {
	if pp.Exact == "" {
		return
	}
	return Compile(pp.Exact)
}

// ToMeshParameters compiles every formula and translates the description for the mesh builder
func (pp *ProblemParameters) ToMeshParameters() (p mesh.Parameters, err error) {
	p = mesh.Parameters{
		AbscissaPointsCount: pp.AbscissaPointsCount,
		OrdinatePointsCount: pp.OrdinatePointsCount,
		AbscissaSplits:      pp.AbscissaSplits,
		OrdinateSplits:      pp.OrdinateSplits,
		AbscissaK:           pp.AbscissaK,
		OrdinateK:           pp.OrdinateK,
		Refinement:          pp.Refinement,
		Areas:               pp.Areas,
	}
	for _, cp := range pp.ControlPoints {
		p.ControlPoints = append(p.ControlPoints, geometry2D.NewPoint(cp[0], cp[1]))
	}
	for i, m := range pp.Materials {
		mtl := geometry2D.Material{Lambda: m.Lambda, Gamma: m.Gamma, F: geometry2D.Const(0)}
		if m.F != "" {
			if mtl.F, err = Compile(m.F); err != nil {
				err = fmt.Errorf("%w: material %d: %v", mesh.ErrInvalidParameters, i, err)
				return
			}
		}
		p.Materials = append(p.Materials, mtl)
	}
	for i, f := range pp.Formulas {
		var fn geometry2D.Func
		if fn, err = Compile(f.Value); err != nil {
			err = fmt.Errorf("%w: formula %d: %v", mesh.ErrInvalidParameters, i, err)
			return
		}
		if f.Beta != nil {
			p.Formulas = append(p.Formulas, mesh.NewRobinFormula(fn, *f.Beta))
		} else {
			p.Formulas = append(p.Formulas, mesh.NewFormula(fn))
		}
	}
	for i, b := range pp.Borders {
		var kind types.BoundaryKind
		if kind, err = types.ParseBoundaryKind(b.Kind); err != nil {
			err = fmt.Errorf("%w: border %d: %v", mesh.ErrInvalidParameters, i, err)
			return
		}
		p.Borders = append(p.Borders, mesh.Border{Points: b.Points, Kind: kind, Formula: b.Formula})
	}
	return
}
