package InputParameters

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/thegrosss/FEM-Course-Project/geometry2D"
)

// formulaEnv is the evaluation environment: r and x name the radius, z and y the axial coordinate
func formulaEnv() map[string]interface{} {
	return map[string]interface{}{
		"r": 0., "z": 0., "x": 0., "y": 0.,
		"pi": math.Pi, "e": math.E,
		"sqrt": math.Sqrt, "exp": math.Exp, "log": math.Log,
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"atan": math.Atan, "sinh": math.Sinh, "cosh": math.Cosh,
		"pow": math.Pow,
	}
}

// Compile turns a formula string such as "r^2 + sin(pi*z)" into a geometry2D.Func.
// The returned function reuses one environment and is not safe for concurrent use.
func Compile(formula string) (f geometry2D.Func, err error) {
	var (
		env     = formulaEnv()
		program *vm.Program
	)
	if program, err = expr.Compile(formula, expr.Env(env), expr.AsFloat64()); err != nil {
		err = fmt.Errorf("formula %q: %w", formula, err)
		return
	}
	f = func(r, z float64) float64 {
		env["r"], env["x"] = r, r
		env["z"], env["y"] = z, z
		out, runErr := expr.Run(program, env)
		if runErr != nil {
			panic(fmt.Errorf("formula %q at (%g, %g): %w", formula, r, z, runErr))
		}
		switch v := out.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		panic(fmt.Errorf("formula %q returned %T", formula, out))
	}
	return
}
