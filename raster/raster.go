// Package raster samples shapes onto a grid.
package raster

import (
	"time"

	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/notargets/lb2dgeom/utils"
	"gonum.org/v1/gonum/mat"
)

// Rasterize evaluates s at every cell center of g using all CPUs.
// phi is Ny x Nx with phi.At(j, i) the signed distance at cell (i, j), and
// solid is exactly phi <= 0.
func Rasterize(g *grids.Grid, s shapes.Shape) (phi *mat.Dense, solid *Mask) {
	return RasterizeN(g, s, 0)
}

// RasterizeN is Rasterize on NP goroutines, each owning a band of rows.
// The result does not depend on NP.
func RasterizeN(g *grids.Grid, s shapes.Shape, NP int) (phi *mat.Dense, solid *Mask) {
	var (
		start = time.Now()
		pm    = utils.NewPartitionMap(utils.ParallelDegree(NP), g.Ny)
		raw   = make([]float64, g.NumCells())
	)
	solid = newMask(g.Nx, g.Ny)
	pm.ParallelRange(func(_, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 0; i < g.Nx; i++ {
				var (
					p = g.CellCenter(i, j)
					k = j*g.Nx + i
				)
				raw[k] = s.SDF(p.X, p.Y)
				solid.data[k] = raw[k] <= 0
			}
		}
	})
	phi = mat.NewDense(g.Ny, g.Nx, raw)
	utils.Logger().Debug("rasterized", "grid", g.String(), "solid", solid.Count(),
		"workers", pm.ParallelDegree, "elapsed", time.Since(start))
	return
}

// MaskFromPhi derives the solid mask phi <= 0 from a Ny x Nx field
func MaskFromPhi(phi mat.Matrix) (solid *Mask) {
	ny, nx := phi.Dims()
	solid = newMask(nx, ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			solid.data[j*nx+i] = phi.At(j, i) <= 0
		}
	}
	return
}
