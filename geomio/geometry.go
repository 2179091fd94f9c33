// Package geomio persists rasterized geometry and exports it for solvers.
package geomio

import (
	"fmt"
	"math"

	"github.com/notargets/lb2dgeom/bouzidi"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/raster"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/notargets/lb2dgeom/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Geometry is the full output of the pipeline for one grid and shape
type Geometry struct {
	Title   string
	Grid    *grids.Grid
	Phi     *mat.Dense
	Solid   *raster.Mask
	Bouzidi *bouzidi.Field
	Extras  map[string]*mat.Dense
}

// NewGeometry rasterizes s on g and computes its boundary fractions on NP
// goroutines, NP < 1 meaning one per CPU
func NewGeometry(title string, g *grids.Grid, s shapes.Shape, NP int) (geo *Geometry, err error) {
	phi, solid := raster.RasterizeN(g, s, NP)
	var f *bouzidi.Field
	if f, err = bouzidi.ComputeN(g, phi, solid, NP); err != nil {
		return
	}
	geo = &Geometry{
		Title:   title,
		Grid:    g,
		Phi:     phi,
		Solid:   solid,
		Bouzidi: f,
	}
	return
}

func (geo *Geometry) CellTypes() *raster.CellTypes {
	return raster.ClassifyCells(geo.Solid)
}

func (geo *Geometry) check() (err error) {
	g := geo.Grid
	if g == nil || geo.Phi == nil || geo.Solid == nil || geo.Bouzidi == nil {
		return fmt.Errorf("%w: geometry is incomplete", bouzidi.ErrShapeMismatch)
	}
	if err = g.CheckField("phi", geo.Phi); err != nil {
		return fmt.Errorf("%w: %v", bouzidi.ErrShapeMismatch, err)
	}
	if geo.Solid.Nx != g.Nx || geo.Solid.Ny != g.Ny {
		return fmt.Errorf("%w: solid is %dx%d, grid is %dx%d",
			bouzidi.ErrShapeMismatch, geo.Solid.Nx, geo.Solid.Ny, g.Nx, g.Ny)
	}
	if geo.Bouzidi.Nx != g.Nx || geo.Bouzidi.Ny != g.Ny {
		return fmt.Errorf("%w: bouzidi is %dx%d, grid is %dx%d",
			bouzidi.ErrShapeMismatch, geo.Bouzidi.Nx, geo.Bouzidi.Ny, g.Nx, g.Ny)
	}
	for name, e := range geo.Extras {
		if e == nil {
			return fmt.Errorf("%w: extra %q is nil", bouzidi.ErrShapeMismatch, name)
		}
		if err = g.CheckField("extra "+name, e); err != nil {
			return fmt.Errorf("%w: %v", bouzidi.ErrShapeMismatch, err)
		}
	}
	return
}

type Summary struct {
	Cells, SolidCells, NearWallCells int
	PhiMin, PhiMax                   float64
	Links                            int
	QMin, QMax, QMean, QStdDev       float64
}

// Summarize gathers the statistics reported by the info command
func (geo *Geometry) Summarize() (s Summary) {
	var (
		raw = mat.DenseCopyOf(geo.Phi).RawMatrix().Data
		qs  = geo.Bouzidi.Values()
	)
	s.Cells = geo.Grid.NumCells()
	s.SolidCells = geo.Solid.Count()
	s.NearWallCells = geo.CellTypes().Count(types.NearWall)
	s.PhiMin, s.PhiMax = floats.Min(raw), floats.Max(raw)
	s.Links = len(qs)
	if s.Links == 0 {
		s.QMin, s.QMax, s.QMean, s.QStdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return
	}
	s.QMin, s.QMax = floats.Min(qs), floats.Max(qs)
	s.QMean, s.QStdDev = stat.MeanStdDev(qs, nil)
	return
}

func (s Summary) Print() {
	fmt.Printf("%d\t\t\t= Cells\n", s.Cells)
	fmt.Printf("%d\t\t\t= Solid Cells\n", s.SolidCells)
	fmt.Printf("%d\t\t\t= Near Wall Cells\n", s.NearWallCells)
	fmt.Printf("[%8.5f, %8.5f]\t= Phi Range\n", s.PhiMin, s.PhiMax)
	fmt.Printf("%d\t\t\t= Boundary Links\n", s.Links)
	fmt.Printf("[%8.5f, %8.5f]\t= Q Range\n", s.QMin, s.QMax)
	fmt.Printf("%8.5f +- %8.5f\t= Q Mean\n", s.QMean, s.QStdDev)
}
