// Package bouzidi computes the fraction of each fluid-to-solid D2Q9 link that
// lies on the fluid side of the boundary, for interpolated bounce-back.
//
// The fraction is taken from the two signed distances at the ends of the link,
// t = phi_f / (phi_f - phi_s), clamped to [0, 1]. It is measured from the fluid
// node and is already normalized by the physical link length Dx*|e_k|. The
// signed distance is assumed continuous along the link; a discontinuous field
// gives meaningless fractions and is not detected.
//
// Links leaving the grid, links between two fluid cells, and every link of a
// solid cell hold the sentinel.
package bouzidi

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/notargets/lb2dgeom/d2q9"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/raster"
	"github.com/notargets/lb2dgeom/utils"
	"gonum.org/v1/gonum/mat"
)

var ErrShapeMismatch = errors.New("shape mismatch")

// Compute builds the boundary fraction field using all CPUs
func Compute(g *grids.Grid, phi mat.Matrix, solid *raster.Mask) (*Field, error) {
	return ComputeN(g, phi, solid, 0)
}

// ComputeN is Compute on NP goroutines, each owning a band of rows. The
// result does not depend on NP.
func ComputeN(g *grids.Grid, phi mat.Matrix, solid *raster.Mask, NP int) (f *Field, err error) {
	if err = g.CheckField("phi", phi); err != nil {
		err = fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		return
	}
	if solid.Nx != g.Nx || solid.Ny != g.Ny {
		err = fmt.Errorf("%w: solid mask is %dx%d, grid is %dx%d",
			ErrShapeMismatch, solid.Nx, solid.Ny, g.Nx, g.Ny)
		return
	}
	var (
		start = time.Now()
		pm    = utils.NewPartitionMap(utils.ParallelDegree(NP), g.Ny)
		log   = utils.Logger()
	)
	f = newField(g.Nx, g.Ny)
	pm.ParallelRange(func(_, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 0; i < g.Nx; i++ {
				if solid.At(i, j) {
					continue
				}
				phiF := phi.At(j, i)
				for _, dir := range d2q9.Links() {
					var (
						e      = dir.Offset()
						ii, jj = i + e.X, j + e.Y
					)
					if !g.Contains(ii, jj) || !solid.At(ii, jj) {
						continue
					}
					phiS := phi.At(jj, ii)
					q, ok := linkFraction(phiF, phiS)
					if !ok {
						log.Warn("degenerate boundary link",
							"i", i, "j", j, "dir", dir.String(),
							"phi_fluid", phiF, "phi_solid", phiS)
						continue
					}
					f.Data[f.index(i, j, dir)] = q
				}
			}
		}
	})
	log.Debug("bouzidi", "grid", g.String(), "links", f.Count(),
		"workers", pm.ParallelDegree, "elapsed", time.Since(start))
	return
}

// linkFraction locates the zero crossing between a fluid value and a solid
// value by linear interpolation
func linkFraction(phiF, phiS float64) (q float64, ok bool) {
	if phiF == phiS {
		return
	}
	t := phiF / (phiF - phiS)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	return math.Min(math.Max(t, 0), 1), true
}
