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
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notargets/lb2dgeom/geomio"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r2"
)

type demoScene func() (g *grids.Grid, s shapes.Shape, err error)

var demoScenes = map[string]demoScene{
	// Circle joined to a rectangle on its right
	"union": func() (g *grids.Grid, s shapes.Shape, err error) {
		if g, err = grids.NewGrid(120, 80, 1, r2.Vec{X: -60, Y: -40}); err != nil {
			return
		}
		var (
			c *shapes.Circle
			r *shapes.Rectangle
		)
		if c, err = shapes.NewCircle(-15, 0, 20); err != nil {
			return
		}
		if r, err = shapes.NewRectangle(15, 0, 30, 20, 0); err != nil {
			return
		}
		return g, shapes.NewUnion(c, r), nil
	},
	// Circle with a square hole
	"difference": func() (g *grids.Grid, s shapes.Shape, err error) {
		if g, err = grids.NewGrid(120, 80, 1, r2.Vec{X: -60, Y: -40}); err != nil {
			return
		}
		var (
			c *shapes.Circle
			r *shapes.Rectangle
		)
		if c, err = shapes.NewCircle(0, 0, 25); err != nil {
			return
		}
		if r, err = shapes.NewRectangle(0, 0, 20, 20, 0); err != nil {
			return
		}
		return g, shapes.NewDifference(c, r), nil
	},
	"ellipse": func() (g *grids.Grid, s shapes.Shape, err error) {
		if g, err = grids.NewGrid(100, 80, 1, r2.Vec{X: -50, Y: -40}); err != nil {
			return
		}
		var e *shapes.Ellipse
		if e, err = shapes.NewEllipse(0, 0, 20, 10, math.Pi/6); err != nil {
			return
		}
		return g, e, nil
	},
	"cassini": func() (g *grids.Grid, s shapes.Shape, err error) {
		if g, err = grids.NewGrid(120, 120, 1, r2.Vec{X: -60, Y: -60}); err != nil {
			return
		}
		var co *shapes.CassiniOval
		if co, err = shapes.NewCassiniOval(0, 0, 25, 15, math.Pi/4); err != nil {
			return
		}
		return g, co, nil
	},
}

func demoNames() (names []string) {
	for name := range demoScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// DemoCmd represents the demo command
var DemoCmd = &cobra.Command{
	Use:   "demo <" + strings.Join(demoNames(), "|") + ">",
	Short: "Build one of the example scenes with plots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		_, err = RunDemo(args[0], viper.GetString("outputDir"), viper.GetInt("parallel"))
		return
	},
}

func init() {
	rootCmd.AddCommand(DemoCmd)
}

// RunDemo builds the named scene and writes demo_<name>.geom, the text table
// of near-wall cells and the plots into outputDir
func RunDemo(name, outputDir string, NP int) (geo *geomio.Geometry, err error) {
	scene, ok := demoScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q, expected one of %s", name, strings.Join(demoNames(), ", "))
	}
	var (
		g *grids.Grid
		s shapes.Shape
	)
	if g, s, err = scene(); err != nil {
		return
	}
	if geo, err = geomio.NewGeometry(name, g, s, NP); err != nil {
		return
	}
	if err = os.MkdirAll(outputDir, 0755); err != nil {
		return
	}
	base := filepath.Join(outputDir, "demo_"+name)
	if err = geomio.Save(base+".geom", geo); err != nil {
		return
	}
	if err = writeTxt(base+".txt", geo, geomio.SelectNearWall, true); err != nil {
		return
	}
	if err = writePlots(base, geo); err != nil {
		return
	}
	fmt.Printf("wrote %s.geom, %s.txt and plots in %s\n", base, base, base)
	PrintInfo(geo)
	return
}
