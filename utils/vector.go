package utils

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RelativeNorm returns ||a-b||_2 / ||b||_2, or the absolute norm when b vanishes
func RelativeNorm(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Errorf("vector lengths differ: %d and %d", len(a), len(b)))
	}
	var (
		diff = floats.Distance(a, b, 2)
		ref  = floats.Norm(b, 2)
	)
	if ref == 0 {
		return diff
	}
	return diff / ref
}

func IsNan(v []float64) bool {
	for _, f := range v {
		if math.IsNaN(f) {
			return true
		}
	}
	return false
}

// DumpVector writes one value per line
func DumpVector(w io.Writer, v []float64) (err error) {
	for _, val := range v {
		if _, err = fmt.Fprintf(w, "%v\n", val); err != nil {
			return
		}
	}
	return
}
