package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/thegrosss/FEM-Course-Project/FEM2D"
	"github.com/thegrosss/FEM-Course-Project/InputParameters"
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/model_problems/Axisymmetric"
	"github.com/thegrosss/FEM-Course-Project/utils"
)

var (
	caseName = "smooth"
	splits   = 2
	levels   = 4
	csvFile  string
)

func main() {
	casePtr := flag.String("case", caseName, fmt.Sprintf("built in case, one of %v", Axisymmetric.Names()))
	splitsPtr := flag.Int("splits", splits, "splits per macro interval at level 0")
	levelsPtr := flag.Int("levels", levels, "number of refinement levels")
	csvFilePtr := flag.String("csvFile", csvFile, "optional file receiving the study as CSV")
	flag.Parse()
	caseName, splits, levels, csvFile = *casePtr, *splitsPtr, *levelsPtr, *csvFilePtr

	cs, err := RunStudy(caseName, splits, levels)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	cs.Print()
	if len(csvFile) != 0 {
		if err = cs.WriteCSV(csvFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
}

type ConvergenceStudy struct {
	title                 string
	refinement, numBasis  []int
	iterations            []int
	nodalError, sampleErr []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{title: title}
}

func (cs *ConvergenceStudy) Add(refinement, numBasis, iterations int, nodalError, sampleErr float64) {
	cs.refinement = append(cs.refinement, refinement)
	cs.numBasis = append(cs.numBasis, numBasis)
	cs.iterations = append(cs.iterations, iterations)
	cs.nodalError = append(cs.nodalError, nodalError)
	cs.sampleErr = append(cs.sampleErr, sampleErr)
}

// Order is the observed order between level i-1 and i, each level halving the element size
func Order(coarse, fine float64) float64 {
	if coarse <= 0 || fine <= 0 {
		return math.NaN()
	}
	return math.Log2(coarse / fine)
}

// RunStudy solves one case at refinement levels 0..levels-1
func RunStudy(name string, splits, levels int) (cs *ConvergenceStudy, err error) {
	var c Axisymmetric.Case
	for level := 0; level < levels; level++ {
		if c, err = Axisymmetric.Lookup(name, splits, level); err != nil {
			return
		}
		if cs == nil {
			cs = NewConvergenceStudy(c.Description)
		}
		var m *mesh.Mesh
		if m, err = mesh.Build(c.Params); err != nil {
			return
		}
		s := FEM2D.NewSolver(m, utils.NewLOS(100*InputParameters.DefaultMaxIterations, InputParameters.DefaultTolerance))
		s.Solve()
		sample, _ := s.SampleError(c.Exact, sampleGrid(m, 16))
		cs.Add(level, len(s.Solution), s.Result.Iterations, s.NodalError(c.Exact), sample)
	}
	return
}

func sampleGrid(m *mesh.Mesh, n int) (pts []geometry2D.Point) {
	bb := m.Bounds()
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			pts = append(pts, bb.Lerp(float64(j)/float64(n), float64(i)/float64(n)))
		}
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s\n", cs.title)
	fmt.Printf("%5s, %8s, %6s, %12s, %6s, %12s, %6s\n", "level", "N", "iter", "nodal", "order", "sampled", "order")
	for i := range cs.refinement {
		nodalOrder, sampleOrder := math.NaN(), math.NaN()
		if i > 0 {
			nodalOrder = Order(cs.nodalError[i-1], cs.nodalError[i])
			sampleOrder = Order(cs.sampleErr[i-1], cs.sampleErr[i])
		}
		fmt.Printf("%5d, %8d, %6d, %12.5e, %6.3f, %12.5e, %6.3f\n",
			cs.refinement[i], cs.numBasis[i], cs.iterations[i],
			cs.nodalError[i], nodalOrder, cs.sampleErr[i], sampleOrder)
	}
}

func (cs *ConvergenceStudy) WriteCSV(fileName string) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	records := [][]string{{"title", "level", "N", "iterations", "nodal", "sampled"}}
	for i := range cs.refinement {
		records = append(records, []string{
			cs.title,
			strconv.Itoa(cs.refinement[i]),
			strconv.Itoa(cs.numBasis[i]),
			strconv.Itoa(cs.iterations[i]),
			strconv.FormatFloat(cs.nodalError[i], 'e', 8, 64),
			strconv.FormatFloat(cs.sampleErr[i], 'e', 8, 64),
		})
	}
	return w.WriteAll(records)
}
