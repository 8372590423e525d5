package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/types"
	"github.com/thegrosss/FEM-Course-Project/utils"
)

var ErrInvalidParameters = errors.New("mesh: invalid parameters")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}

// MaxRefinement bounds the uniform refinement level, each level quadruples the element count
const MaxRefinement = 12

/*
Parameters describe a piecewise rectangular domain on a grid of control points.

The control points are stored row by row (rows of increasing z), AbscissaPointsCount per row.
Every macro interval between neighbouring control points is split AbscissaSplits times along r
and OrdinateSplits times along z, with step lengths following a geometric progression of ratio
AbscissaK / OrdinateK. A negative ratio k stands for the reciprocal stretching 1/|k|.
*/
type Parameters struct {
	AbscissaPointsCount, OrdinatePointsCount int
	ControlPoints                            []geometry2D.Point
	AbscissaSplits, OrdinateSplits           int
	AbscissaK, OrdinateK                     float64
	Refinement                               int
	Materials                                []geometry2D.Material
	Areas                                    []Area
	Formulas                                 []BoundaryFormula
	Borders                                  []Border
}

func (p *Parameters) controlPoint(row, col int) geometry2D.Point {
	return p.ControlPoints[row*p.AbscissaPointsCount+col]
}

func (p *Parameters) Validate() (err error) {
	var (
		pr, pz = p.AbscissaPointsCount, p.OrdinatePointsCount
	)
	if pr < 2 || pz < 2 {
		return invalid("control grid must be at least 2x2, have %dx%d", pr, pz)
	}
	if len(p.ControlPoints) != pr*pz {
		return invalid("expected %d control points, have %d", pr*pz, len(p.ControlPoints))
	}
	if p.AbscissaSplits < 1 || p.OrdinateSplits < 1 {
		return invalid("split counts must be positive, have %d, %d", p.AbscissaSplits, p.OrdinateSplits)
	}
	for _, k := range []float64{p.AbscissaK, p.OrdinateK} {
		if k == 0 || math.IsNaN(k) || math.IsInf(k, 0) {
			return invalid("progression ratio must be finite and non zero, have %v", k)
		}
	}
	if p.Refinement < 0 || p.Refinement > MaxRefinement {
		return invalid("refinement must be in [0,%d], have %d", MaxRefinement, p.Refinement)
	}
	for i, pt := range p.ControlPoints {
		if pt.R < 0 {
			return invalid("control point %d has negative radius %v", i, pt.R)
		}
	}
	for row := 0; row < pz; row++ {
		for col := 0; col < pr; col++ {
			pt := p.controlPoint(row, col)
			if math.Abs(pt.Z-p.controlPoint(row, 0).Z) > utils.NODETOL {
				return invalid("control row %d is not horizontal at point %v", row, pt)
			}
			if math.Abs(pt.R-p.controlPoint(0, col).R) > utils.NODETOL {
				return invalid("control column %d is not vertical at point %v", col, pt)
			}
			if col > 0 && pt.R <= p.controlPoint(row, col-1).R {
				return invalid("control points must increase along r, row %d column %d", row, col)
			}
			if row > 0 && pt.Z <= p.controlPoint(row-1, col).Z {
				return invalid("control points must increase along z, row %d column %d", row, col)
			}
		}
	}
	if len(p.Materials) == 0 {
		return invalid("at least one material is required")
	}
	for i, a := range p.Areas {
		if a.Material < 0 || a.Material >= len(p.Materials) {
			return invalid("area %d references unknown material %d", i, a.Material)
		}
		if a.Left < 0 || a.Left >= a.Right || a.Right > pr-1 ||
			a.Bottom < 0 || a.Bottom >= a.Top || a.Top > pz-1 {
			return invalid("area %d has an empty or out of range macro cell span %+v", i, a)
		}
	}
	for i, f := range p.Formulas {
		if f.Value == nil {
			return invalid("formula %d has no value function", i)
		}
		if f.IsRobin() && (math.IsNaN(f.Beta) || math.IsInf(f.Beta, 0)) {
			return invalid("formula %d has a non finite beta", i)
		}
	}
	for i, b := range p.Borders {
		for _, ip := range b.Points {
			if ip < 0 || ip >= pr*pz {
				return invalid("border %d references unknown control point %d", i, ip)
			}
		}
		if b.Kind > types.BC_Newton {
			return invalid("border %d has unknown kind %v", i, b.Kind)
		}
		if b.Kind == types.BC_Null {
			continue
		}
		if b.Formula < 0 || b.Formula >= len(p.Formulas) {
			return invalid("border %d references unknown formula %d", i, b.Formula)
		}
		if b.Kind == types.BC_Newton && !p.Formulas[b.Formula].IsRobin() {
			return invalid("border %d is a Newton border but formula %d carries no beta", i, b.Formula)
		}
	}
	return
}

// Refined returns a copy with the refinement folded into the split counts and ratios:
// every level doubles the splits and takes the square root of |k|
func (p Parameters) Refined() (r Parameters) {
	r = p
	if p.Refinement == 0 {
		return
	}
	var (
		factor = 1 << uint(p.Refinement)
		root   = func(k float64) float64 {
			sign := 1.
			if k < 0 {
				sign = -1
			}
			return sign * math.Pow(math.Abs(k), 1./float64(factor))
		}
	)
	r.AbscissaSplits *= factor
	r.OrdinateSplits *= factor
	r.AbscissaK = root(p.AbscissaK)
	r.OrdinateK = root(p.OrdinateK)
	r.Refinement = 0
	return
}

// EffectiveRatio resolves the negative ratio convention
func EffectiveRatio(k float64) float64 {
	if k < 0 {
		return -1. / k
	}
	return k
}

// GeometricFractions returns n+1 increasing fractions from 0 to 1 whose successive
// differences form a geometric sequence of ratio k
func GeometricFractions(n int, k float64) (t []float64) {
	t = make([]float64, n+1)
	if math.Abs(k-1) < 1.e-14 {
		for l := 1; l < n; l++ {
			t[l] = float64(l) / float64(n)
		}
	} else {
		var (
			h    = (1 - k) / (1 - math.Pow(k, float64(n)))
			step = h
		)
		for l := 1; l < n; l++ {
			t[l] = t[l-1] + step
			step *= k
		}
	}
	t[n] = 1
	return
}
