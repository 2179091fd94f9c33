// Package grids defines the uniform Cartesian grid that geometry is sampled on.
//
// Cell (i, j) covers [Origin.X + i*Dx, Origin.X + (i+1)*Dx) in x and the
// matching band in y; Origin is the lower-left corner of the grid, and every
// sampled quantity lives at the cell center (i+0.5, j+0.5)*Dx from it.
// Fields are stored with Ny rows and Nx columns, so cell (i, j) is element
// (j, i) of a *mat.Dense.
package grids

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrInvalidGrid = errors.New("invalid grid")

type Grid struct {
	Nx, Ny int
	Dx     float64
	Origin r2.Vec
}

func NewGrid(nx, ny int, dx float64, origin r2.Vec) (g *Grid, err error) {
	switch {
	case nx <= 0:
		err = fmt.Errorf("%w: nx must be positive, got %d", ErrInvalidGrid, nx)
	case ny <= 0:
		err = fmt.Errorf("%w: ny must be positive, got %d", ErrInvalidGrid, ny)
	case !(dx > 0) || math.IsInf(dx, 0):
		err = fmt.Errorf("%w: dx must be positive and finite, got %v", ErrInvalidGrid, dx)
	case !isFinite(origin.X) || !isFinite(origin.Y):
		err = fmt.Errorf("%w: origin must be finite, got (%v, %v)", ErrInvalidGrid, origin.X, origin.Y)
	}
	if err != nil {
		return
	}
	g = &Grid{Nx: nx, Ny: ny, Dx: dx, Origin: origin}
	return
}

// CellCenter returns the physical coordinate of the center of cell (i, j)
func (g *Grid) CellCenter(i, j int) r2.Vec {
	return r2.Vec{
		X: g.Origin.X + (float64(i)+0.5)*g.Dx,
		Y: g.Origin.Y + (float64(j)+0.5)*g.Dx,
	}
}

// CellIndex is the inverse of CellCenter: it returns the cell containing p.
func (g *Grid) CellIndex(p r2.Vec) (i, j int, ok bool) {
	i = int(math.Floor((p.X - g.Origin.X) / g.Dx))
	j = int(math.Floor((p.Y - g.Origin.Y) / g.Dx))
	ok = g.Contains(i, j)
	return
}

func (g *Grid) Contains(i, j int) bool {
	return i >= 0 && i < g.Nx && j >= 0 && j < g.Ny
}

// Extent returns the physical lower-left and upper-right corners of the grid
func (g *Grid) Extent() (min, max r2.Vec) {
	min = g.Origin
	max = r2.Vec{
		X: g.Origin.X + float64(g.Nx)*g.Dx,
		Y: g.Origin.Y + float64(g.Ny)*g.Dx,
	}
	return
}

func (g *Grid) NumCells() int {
	return g.Nx * g.Ny
}

// Coords returns meshgrid arrays of the cell-center coordinates, Ny rows by Nx
// columns.
func (g *Grid) Coords() (X, Y *mat.Dense) {
	X = mat.NewDense(g.Ny, g.Nx, nil)
	Y = mat.NewDense(g.Ny, g.Nx, nil)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			p := g.CellCenter(i, j)
			X.Set(j, i, p.X)
			Y.Set(j, i, p.Y)
		}
	}
	return
}

// NewField allocates a zeroed Ny x Nx field matching the grid
func (g *Grid) NewField() *mat.Dense {
	return mat.NewDense(g.Ny, g.Nx, nil)
}

// CheckField returns an error if the field is not Ny x Nx
func (g *Grid) CheckField(name string, f mat.Matrix) error {
	r, c := f.Dims()
	if r != g.Ny || c != g.Nx {
		return fmt.Errorf("%s has dimensions %dx%d, grid needs %dx%d (ny x nx)",
			name, r, c, g.Ny, g.Nx)
	}
	return nil
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid[%dx%d, dx=%g, origin=(%g, %g)]",
		g.Nx, g.Ny, g.Dx, g.Origin.X, g.Origin.Y)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
