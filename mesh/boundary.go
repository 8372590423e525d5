package mesh

import (
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/types"
)

type FormulaKind uint8

const (
	FormulaPlain FormulaKind = iota
	FormulaRobin             // carries a transfer coefficient Beta
)

// BoundaryFormula is a boundary value function, optionally carrying a Robin coefficient
type BoundaryFormula struct {
	Kind  FormulaKind
	Value geometry2D.Func
	Beta  float64
}

func NewFormula(value geometry2D.Func) BoundaryFormula {
	return BoundaryFormula{Kind: FormulaPlain, Value: value}
}

func NewRobinFormula(value geometry2D.Func, beta float64) BoundaryFormula {
	return BoundaryFormula{Kind: FormulaRobin, Value: value, Beta: beta}
}

func (bf BoundaryFormula) IsRobin() bool { return bf.Kind == FormulaRobin }

// BoundaryCondition addresses one element border. Beta is only meaningful in the Newton list.
type BoundaryCondition struct {
	Element     int
	LocalBorder int
	Value       geometry2D.Func
	Beta        float64
}

// Border is a straight boundary segment between two control points
type Border struct {
	Points  [2]int // control point indices
	Kind    types.BoundaryKind
	Formula int // index into Parameters.Formulas
}

// Area assigns a material to the macro cells [Left,Right) x [Bottom,Top) of the control grid
type Area struct {
	Material                 int
	Left, Right, Bottom, Top int
}
