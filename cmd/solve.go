/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thegrosss/FEM-Course-Project/FEM2D"
	"github.com/thegrosss/FEM-Course-Project/InputParameters"
	"github.com/thegrosss/FEM-Course-Project/geometry2D"
	"github.com/thegrosss/FEM-Course-Project/mesh"
	"github.com/thegrosss/FEM-Course-Project/model_problems/Axisymmetric"
	"github.com/thegrosss/FEM-Course-Project/utils"
)

type ModelAxi struct {
	ICFile             string
	Case               string
	Splits, Refinement int
	OutputFile         string
	Verbose, Dump      bool
	Profile            bool
	Settings           SolverSettings
}

// SolverSettings is layered: defaults, config file, problem file, then command line, zero meaning unset
type SolverSettings struct {
	MaxIterations int     `json:"MaxIterations"`
	Tolerance     float64 `json:"Tolerance"`
}

func (ss SolverSettings) Override(o SolverSettings) SolverSettings {
	if o.MaxIterations > 0 {
		ss.MaxIterations = o.MaxIterations
	}
	if o.Tolerance > 0 {
		ss.Tolerance = o.Tolerance
	}
	return ss
}

// Report is the solve output: the three visualization artifacts plus the solver summary
type Report struct {
	Title       string         `json:"Title"`
	Nodes       [][2]float64   `json:"Nodes"`
	Elements    [][4]int       `json:"Elements"`
	Solution    [][3]float64   `json:"Solution"` // r, z, u per basis function
	Settings    SolverSettings `json:"Settings"`
	Iterations  int            `json:"Iterations"`
	ResidualSq  float64        `json:"ResidualSq"`
	Converged   bool           `json:"Converged"`
	NodalError  *float64       `json:"NodalError,omitempty"`
	SampleError *float64       `json:"SampleError,omitempty"`
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a problem file or a built in case",
	Long: `
Builds the mesh, assembles and solves the system, then reports the iteration count and,
when an exact solution is known, the error at the basis nodes and on a sample grid.

femcourse solve -I problem.yaml -o solution.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ma := &ModelAxi{}
		ma.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		ma.Case, _ = cmd.Flags().GetString("case")
		ma.Splits, _ = cmd.Flags().GetInt("splits")
		ma.Refinement, _ = cmd.Flags().GetInt("refinement")
		ma.OutputFile, _ = cmd.Flags().GetString("output")
		ma.Verbose, _ = cmd.Flags().GetBool("verbose")
		ma.Dump, _ = cmd.Flags().GetBool("dump")
		ma.Profile, _ = cmd.Flags().GetBool("profile")
		ma.Settings = SolverSettings{
			MaxIterations: viper.GetInt("maxIterations"),
			Tolerance:     viper.GetFloat64("tolerance"),
		}
		var cl SolverSettings
		if cmd.Flags().Changed("maxIterations") {
			cl.MaxIterations, _ = cmd.Flags().GetInt("maxIterations")
		}
		if cmd.Flags().Changed("tolerance") {
			cl.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		}
		if ma.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		rpt, err := RunAxi(ma, cl)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if len(ma.OutputFile) != 0 {
			if err = WriteReport(ma.OutputFile, rpt); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML problem file: control points, splits, materials, formulas, borders")
	SolveCmd.Flags().StringP("case", "c", "", "built in case to solve instead of a problem file, see the cases command")
	SolveCmd.Flags().IntP("splits", "s", 2, "splits per macro interval for a built in case")
	SolveCmd.Flags().IntP("refinement", "r", 0, "uniform refinement level for a built in case")
	SolveCmd.Flags().StringP("output", "o", "", "write nodes, elements and the solution to this YAML file")
	SolveCmd.Flags().BoolP("verbose", "v", false, "print a summary of every stage")
	SolveCmd.Flags().Bool("dump", false, "print the dense assembled matrix, for small problems only")
	SolveCmd.Flags().Bool("profile", false, "write a CPU profile to the working directory")
	SolveCmd.Flags().Int("maxIterations", InputParameters.DefaultMaxIterations, "iteration cap of the LOS solver")
	SolveCmd.Flags().Float64("tolerance", InputParameters.DefaultTolerance, "tolerance on the squared residual norm")
}

// problem gathers everything RunAxi needs from either input source
type problem struct {
	title    string
	params   mesh.Parameters
	exact    geometry2D.Func
	settings SolverSettings
}

func loadProblem(ma *ModelAxi) (pb problem, err error) {
	switch {
	case len(ma.ICFile) != 0:
		var (
			data []byte
			ip   InputParameters.ProblemParameters
		)
		if data, err = ioutil.ReadFile(ma.ICFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
		if ma.Verbose {
			ip.Print()
		}
		if pb.params, err = ip.ToMeshParameters(); err != nil {
			return
		}
		if pb.exact, err = ip.ExactSolution(); err != nil {
			return
		}
		pb.title = ip.Title
		pb.settings = SolverSettings{MaxIterations: ip.Solver.MaxIterations, Tolerance: ip.Solver.Tolerance}
	case len(ma.Case) != 0:
		var c Axisymmetric.Case
		if c, err = Axisymmetric.Lookup(ma.Case, ma.Splits, ma.Refinement); err != nil {
			return
		}
		pb.title, pb.params, pb.exact = c.Description, c.Params, c.Exact
	default:
		err = fmt.Errorf("must supply a problem file (-I, --inputConditionsFile) or a built in case (-c, --case)")
	}
	return
}

// RunAxi solves one problem, settings from the command line override every other source
func RunAxi(ma *ModelAxi, cl SolverSettings) (rpt *Report, err error) {
	var (
		pb problem
		m  *mesh.Mesh
	)
	if pb, err = loadProblem(ma); err != nil {
		return
	}
	settings := SolverSettings{
		MaxIterations: InputParameters.DefaultMaxIterations,
		Tolerance:     InputParameters.DefaultTolerance,
	}.Override(ma.Settings).Override(pb.settings).Override(cl)
	if m, err = mesh.Build(pb.params); err != nil {
		return
	}
	s := FEM2D.NewSolver(m, utils.NewLOS(settings.MaxIterations, settings.Tolerance))
	if ma.Verbose {
		fmt.Printf("Mesh: %d x %d nodes, %d elements, %d basis functions\n",
			m.NR, m.NZ, m.NumElements(), s.Assembler.Matrix.Size())
		fmt.Printf("Portrait: %d stored off diagonal entries\n", s.Assembler.Matrix.NNZ())
		fmt.Printf("Borders: %d Dirichlet, %d Neumann, %d Newton\n", len(m.Dirichlet), len(m.Neumann), len(m.Newton))
	}
	s.Solve()
	if ma.Dump {
		if err = s.DumpDense(os.Stdout); err != nil {
			return
		}
	}
	rpt = &Report{
		Title:      pb.title,
		Settings:   settings,
		Iterations: s.Result.Iterations,
		ResidualSq: s.Result.ResidualSq,
		Converged:  s.Result.Converged,
	}
	for _, p := range s.Nodes() {
		rpt.Nodes = append(rpt.Nodes, [2]float64{p.R, p.Z})
	}
	rpt.Elements = s.ElementCorners()
	for _, smp := range s.Samples() {
		rpt.Solution = append(rpt.Solution, [3]float64{smp.Pos.R, smp.Pos.Z, smp.Value})
	}
	fmt.Printf("%s: %d iterations, residual^2 = %8.3e, converged = %v\n",
		pb.title, rpt.Iterations, rpt.ResidualSq, rpt.Converged)
	if exact := s.ExactSolution(pb.exact); exact != nil {
		nodal := s.NodalError(exact)
		rpt.NodalError = &nodal
		sample, outside := s.SampleError(exact, SampleGrid(m.Bounds(), 10))
		if !math.IsNaN(sample) {
			rpt.SampleError = &sample
		}
		fmt.Printf("Relative error: nodal = %8.3e, sampled = %8.3e (%d points outside)\n", nodal, sample, outside)
	}
	return
}

// SampleGrid spreads (n+1) x (n+1) points evenly over a bounding box
func SampleGrid(bb *geometry2D.BoundingBox, n int) (pts []geometry2D.Point) {
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			pts = append(pts, bb.Lerp(float64(j)/float64(n), float64(i)/float64(n)))
		}
	}
	return
}

func WriteReport(fileName string, rpt *Report) (err error) {
	var data []byte
	if data, err = yaml.Marshal(rpt); err != nil {
		return
	}
	return ioutil.WriteFile(fileName, data, 0644)
}
