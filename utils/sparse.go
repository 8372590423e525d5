package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
SymSparse is a symmetric matrix holding only its strictly lower triangle, in compressed rows:

	IG - row pointers, len N+1; the entries of row i live in [IG[i], IG[i+1])
	JG - column indices, strictly increasing within a row and strictly below the diagonal
	DI - the diagonal, len N
	GG - off diagonal values, parallel to JG

An entry (i,j), i>j, stands for both (i,j) and (j,i).
*/
type SymSparse struct {
	IG, JG []int
	DI, GG []float64
}

// NewSymSparse allocates zeroed values over a portrait, which must honor the storage contract
func NewSymSparse(ig, jg []int) (m *SymSparse) {
	if err := CheckPortrait(ig, jg); err != nil {
		panic(err)
	}
	m = &SymSparse{
		IG: ig,
		JG: jg,
		DI: make([]float64, len(ig)-1),
		GG: make([]float64, len(jg)),
	}
	return
}

func CheckPortrait(ig, jg []int) (err error) {
	if len(ig) < 2 || ig[0] != 0 {
		return fmt.Errorf("row pointer array must start at 0 and cover at least one row, have %v", ig)
	}
	var (
		N = len(ig) - 1
	)
	if ig[N] != len(jg) {
		return fmt.Errorf("row pointers end at %d but %d column indices are stored", ig[N], len(jg))
	}
	for i := 0; i < N; i++ {
		if ig[i+1] < ig[i] {
			return fmt.Errorf("row pointers decrease at row %d", i)
		}
		for k := ig[i]; k < ig[i+1]; k++ {
			if jg[k] < 0 || jg[k] >= i {
				return fmt.Errorf("row %d holds column %d outside the strict lower triangle", i, jg[k])
			}
			if k > ig[i] && jg[k] <= jg[k-1] {
				return fmt.Errorf("row %d columns are not strictly increasing", i)
			}
		}
	}
	return
}

func (m *SymSparse) Size() int { return len(m.DI) }

// NNZ is the number of stored off diagonal entries
func (m *SymSparse) NNZ() int { return len(m.GG) }

// Slot locates column j in row i, -1 when (i,j) is not part of the portrait
func (m *SymSparse) Slot(i, j int) int {
	var (
		row = m.JG[m.IG[i]:m.IG[i+1]]
		k   = sort.SearchInts(row, j)
	)
	if k < len(row) && row[k] == j {
		return m.IG[i] + k
	}
	return -1
}

func (m *SymSparse) checkIndex(i, j int) {
	if N := m.Size(); i < 0 || i >= N || j < 0 || j >= N {
		panic(fmt.Errorf("index (%d,%d) out of range for a %dx%d matrix", i, j, N, N))
	}
}

// Add accumulates into (i,j). Only the lower triangle (i >= j) may be addressed.
func (m *SymSparse) Add(i, j int, value float64) {
	m.checkIndex(i, j)
	if i == j {
		m.DI[i] += value
		return
	}
	if i < j {
		panic(fmt.Errorf("attempt to add into the upper triangle at (%d,%d)", i, j))
	}
	k := m.Slot(i, j)
	if k < 0 {
		panic(fmt.Errorf("entry (%d,%d) is not part of the matrix portrait", i, j))
	}
	m.GG[k] += value
}

/*
Mul computes y = A x in one pass over the stored triangle, each stored entry contributing to
both y[i] and y[j]. If y is nil a new vector is allocated.
*/
func (m *SymSparse) Mul(x, y []float64) []float64 {
	var (
		N = m.Size()
	)
	if len(x) != N {
		panic(fmt.Errorf("size of matrix %d not equal to size of vector %d", N, len(x)))
	}
	if y == nil {
		y = make([]float64, N)
	} else {
		if len(y) != N {
			panic(fmt.Errorf("size of matrix %d not equal to size of product %d", N, len(y)))
		}
		for i := range y {
			y[i] = 0
		}
	}
	for i := 0; i < N; i++ {
		y[i] += m.DI[i] * x[i]
		for k := m.IG[i]; k < m.IG[i+1]; k++ {
			j := m.JG[k]
			y[i] += m.GG[k] * x[j]
			y[j] += m.GG[k] * x[i]
		}
	}
	return y
}

// Clear zeroes the values and keeps the portrait
func (m *SymSparse) Clear() {
	for i := range m.DI {
		m.DI[i] = 0
	}
	for k := range m.GG {
		m.GG[k] = 0
	}
}

// Copy duplicates the values, the portrait arrays are shared
func (m *SymSparse) Copy() (R *SymSparse) {
	R = &SymSparse{
		IG: m.IG,
		JG: m.JG,
		DI: make([]float64, len(m.DI)),
		GG: make([]float64, len(m.GG)),
	}
	copy(R.DI, m.DI)
	copy(R.GG, m.GG)
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m *SymSparse) Dims() (r, c int) { return m.Size(), m.Size() }
func (m *SymSparse) T() mat.Matrix    { return m }
func (m *SymSparse) At(i, j int) float64 {
	m.checkIndex(i, j)
	if i == j {
		return m.DI[i]
	}
	if i < j {
		i, j = j, i
	}
	if k := m.Slot(i, j); k >= 0 {
		return m.GG[k]
	}
	return 0
}

// ToSymDense reconstructs the full symmetric matrix
func (m *SymSparse) ToSymDense() (S *mat.SymDense) {
	var (
		N = m.Size()
	)
	S = mat.NewSymDense(N, nil)
	for i := 0; i < N; i++ {
		S.SetSym(i, i, m.DI[i])
		for k := m.IG[i]; k < m.IG[i+1]; k++ {
			S.SetSym(i, m.JG[k], m.GG[k])
		}
	}
	return
}

// ToDOK expands both triangles into a dictionary of keys matrix
func (m *SymSparse) ToDOK() (D *sparse.DOK) {
	var (
		N = m.Size()
	)
	D = sparse.NewDOK(N, N)
	for i := 0; i < N; i++ {
		if m.DI[i] != 0 {
			D.Set(i, i, m.DI[i])
		}
		for k := m.IG[i]; k < m.IG[i+1]; k++ {
			if m.GG[k] != 0 {
				D.Set(i, m.JG[k], m.GG[k])
				D.Set(m.JG[k], i, m.GG[k])
			}
		}
	}
	return
}

// DumpDense writes the reconstructed dense matrix, for debugging small systems
func (m *SymSparse) DumpDense(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "%.7f\n", mat.Formatted(m.ToSymDense(), mat.Squeeze()))
	return
}
