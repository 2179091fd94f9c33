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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notargets/lb2dgeom/InputParameters"
	"github.com/notargets/lb2dgeom/geomio"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/script"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/notargets/lb2dgeom/types"
	"github.com/notargets/lb2dgeom/utils"
	"github.com/notargets/lb2dgeom/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r2"
)

type BuildOptions struct {
	InputFile  string
	OutputFile string
	TxtFile    string
	Selection  string
	Header     bool
	PlotDir    string
	// Grid used for scene scripts given directly with -I
	Nx, Ny  int
	Dx      float64
	Origin  [2]float64
	Workers int
}

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rasterize a case or scene and write the geometry bundle",
	Long: `Rasterizes the shape described by a YAML case file or a scene script,
computes the Bouzidi link fractions and writes them to a geometry bundle,
optionally with a text export and PNG plots.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		bo := &BuildOptions{Workers: viper.GetInt("parallel")}
		flags := cmd.Flags()
		if bo.InputFile, err = flags.GetString("inputFile"); err != nil {
			return
		}
		bo.OutputFile, _ = flags.GetString("output")
		bo.TxtFile, _ = flags.GetString("txt")
		bo.Selection, _ = flags.GetString("selection")
		bo.Header, _ = flags.GetBool("header")
		bo.PlotDir, _ = flags.GetString("plots")
		bo.Nx, _ = flags.GetInt("nx")
		bo.Ny, _ = flags.GetInt("ny")
		bo.Dx, _ = flags.GetFloat64("dx")
		bo.Origin[0], _ = flags.GetFloat64("originX")
		bo.Origin[1], _ = flags.GetFloat64("originY")
		_, err = RunBuild(bo)
		return
	},
}

func init() {
	rootCmd.AddCommand(BuildCmd)
	BuildCmd.Flags().StringP("inputFile", "I", "", "YAML case file, or a scene script (.zy)")
	BuildCmd.Flags().StringP("output", "o", "", "geometry bundle to write (default: input name with .geom)")
	BuildCmd.Flags().String("txt", "", "also write a per-cell text table to this file")
	BuildCmd.Flags().String("selection", string(geomio.SelectAll), "cells in the text table: all or near_wall")
	BuildCmd.Flags().Bool("header", true, "write a header row in the text table")
	BuildCmd.Flags().String("plots", "", "write PNG plots into this directory")
	BuildCmd.Flags().Int("nx", 100, "cells in x, for scene scripts")
	BuildCmd.Flags().Int("ny", 100, "cells in y, for scene scripts")
	BuildCmd.Flags().Float64("dx", 1, "cell size, for scene scripts")
	BuildCmd.Flags().Float64("originX", -50, "x of the grid's lower-left corner, for scene scripts")
	BuildCmd.Flags().Float64("originY", -50, "y of the grid's lower-left corner, for scene scripts")
}

func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zy", ".lisp":
		return true
	}
	return false
}

const exampleCase = `
########################################
Title: "Cylinder"
Grid:
  Nx: 200
  Ny: 100
  Dx: 1.0
  Origin: [-50, -50]   # lower-left corner
Shape:
  Type: circle
  Center: [0, 0]
  Radius: 12.5
########################################
`

// processInput reads the case or scene named by bo and returns its title,
// grid and shape
func processInput(bo *BuildOptions) (title string, g *grids.Grid, s shapes.Shape, err error) {
	if len(bo.InputFile) == 0 {
		fmt.Printf("Example Case File:%s\n", exampleCase)
		err = fmt.Errorf("must supply an input file (-I, --inputFile)")
		return
	}
	title = strings.TrimSuffix(filepath.Base(bo.InputFile), filepath.Ext(bo.InputFile))
	if isScript(bo.InputFile) {
		if g, err = grids.NewGrid(bo.Nx, bo.Ny, bo.Dx, r2.Vec{X: bo.Origin[0], Y: bo.Origin[1]}); err != nil {
			return
		}
		s, err = script.EvalFile(bo.InputFile)
		return
	}
	var data []byte
	if data, err = os.ReadFile(bo.InputFile); err != nil {
		return
	}
	cp := &InputParameters.CaseParameters{}
	if err = cp.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", bo.InputFile, err)
		return
	}
	cp.Print()
	if cp.Title != "" {
		title = cp.Title
	}
	if g, s, err = cp.Build(); err != nil {
		err = fmt.Errorf("%s: %w", bo.InputFile, err)
		return
	}
	if cp.Script != "" {
		path := cp.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(bo.InputFile), path)
		}
		s, err = script.EvalFile(path)
	}
	return
}

// RunBuild runs the whole pipeline for one input and writes every requested
// output
func RunBuild(bo *BuildOptions) (geo *geomio.Geometry, err error) {
	var (
		title string
		g     *grids.Grid
		s     shapes.Shape
	)
	if title, g, s, err = processInput(bo); err != nil {
		return
	}
	start := time.Now()
	if geo, err = geomio.NewGeometry(title, g, s, bo.Workers); err != nil {
		return
	}
	fmt.Printf("%s built in %v\n", g, time.Since(start))
	utils.Logger().Info("built geometry", "title", title, "links", geo.Bouzidi.Count(), utils.MemUsage())

	out := bo.OutputFile
	if out == "" {
		out = strings.TrimSuffix(bo.InputFile, filepath.Ext(bo.InputFile)) + ".geom"
	}
	if err = geomio.Save(out, geo); err != nil {
		return
	}
	fmt.Printf("wrote %s\n", out)
	if bo.TxtFile != "" {
		if err = writeTxt(bo.TxtFile, geo, geomio.Selection(bo.Selection), bo.Header); err != nil {
			return
		}
		fmt.Printf("wrote %s\n", bo.TxtFile)
	}
	if bo.PlotDir != "" {
		if err = writePlots(bo.PlotDir, geo); err != nil {
			return
		}
		fmt.Printf("wrote plots to %s\n", bo.PlotDir)
	}
	geo.Summarize().Print()
	return
}

func writeTxt(path string, geo *geomio.Geometry, sel geomio.Selection, header bool) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return geomio.SaveTxt(file, geo.CellTypes(), types.DefaultCellCodes, geo.Bouzidi, sel, header)
}

func writePlots(dir string, geo *geomio.Geometry) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	if err = viz.PlotSolid(filepath.Join(dir, "solid.png"), geo.Solid); err != nil {
		return
	}
	if err = viz.PlotPhi(filepath.Join(dir, "phi.png"), geo.Phi); err != nil {
		return
	}
	if err = viz.PlotBouzidiHist(filepath.Join(dir, "bouzidi_hist.png"), geo.Bouzidi, 20); err != nil {
		return
	}
	_, err = viz.PlotBouzidiDirs(dir, geo.Bouzidi)
	return
}
