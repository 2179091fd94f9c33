package bouzidi

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/notargets/lb2dgeom/d2q9"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/raster"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/notargets/lb2dgeom/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

func setup(t *testing.T, nx, ny int, dx float64, origin r2.Vec, s shapes.Shape) (
	g *grids.Grid, phi *mat.Dense, solid *raster.Mask) {
	var err error
	g, err = grids.NewGrid(nx, ny, dx, origin)
	require.NoError(t, err)
	phi, solid = raster.Rasterize(g, s)
	return
}

func TestCompute(t *testing.T) {
	{ // 5x5 grid with a small circle
		c, err := shapes.NewCircle(0, 0, 1.5)
		require.NoError(t, err)
		g, phi, solid := setup(t, 5, 5, 1.0, r2.Vec{X: -2.5, Y: -2.5}, c)
		f, err := Compute(g, phi, solid)
		require.NoError(t, err)
		assert.Equal(t, 5*5*d2q9.NumLinks, len(f.Data))
		// West of the circle, looking east at the solid cell (1, 2)
		q, ok := f.Q(0, 2, d2q9.East)
		assert.True(t, ok)
		assert.InDelta(t, 0.5, q, 1e-12)
		assert.True(t, q > 0 && q < 1)
		// Nothing to the west of the grid edge
		_, ok = f.Q(0, 2, d2q9.West)
		assert.False(t, ok)
		assert.True(t, math.IsNaN(f.Raw(0, 2, d2q9.West)))
		// The solid center holds only sentinels
		for _, dir := range d2q9.Links() {
			_, ok = f.Q(2, 2, dir)
			assert.False(t, ok)
		}
		_, ok = f.Q(0, 2, d2q9.Rest)
		assert.False(t, ok)
	}
	{ // A boundary passing through a cell center gives q = 1
		c, err := shapes.NewCircle(0, 0, 5)
		require.NoError(t, err)
		g, phi, solid := setup(t, 21, 21, 1.0, r2.Vec{X: -10.5, Y: -10.5}, c)
		f, err := Compute(g, phi, solid)
		require.NoError(t, err)
		q, ok := f.Q(16, 10, d2q9.West)
		assert.True(t, ok)
		assert.InDelta(t, 1.0, q, 1e-12)
		q, ok = f.Q(10, 16, d2q9.South)
		assert.True(t, ok)
		assert.InDelta(t, 1.0, q, 1e-12)
	}
}

func TestFractionInvariants(t *testing.T) {
	e, _ := shapes.NewEllipse(0.3, -0.2, 6, 3.5, 0.7)
	r, _ := shapes.NewRectangle(4, 2, 5, 2, -0.3)
	s := shapes.NewUnion(e, r)
	g, phi, solid := setup(t, 40, 30, 0.5, r2.Vec{X: -10, Y: -7.5}, s)
	f, err := Compute(g, phi, solid)
	require.NoError(t, err)
	assert.True(t, f.Count() > 0)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			for _, dir := range d2q9.Links() {
				var (
					off    = dir.Offset()
					ii, jj = i + off.X, j + off.Y
					want   = !solid.At(i, j) && g.Contains(ii, jj) && solid.At(ii, jj)
				)
				q, ok := f.Q(i, j, dir)
				assert.Equal(t, want, ok, "cell (%d, %d) dir %s", i, j, dir)
				if ok {
					assert.True(t, q >= 0 && q <= 1)
				}
			}
		}
	}
	links := f.Links()
	assert.Equal(t, f.Count(), len(links))
	assert.Equal(t, len(links), len(f.Values()))
	for _, l := range links {
		assert.False(t, solid.At(l.I, l.J))
		q, ok := f.Q(l.I, l.J, l.Dir)
		assert.True(t, ok)
		assert.Equal(t, q, l.Q)
	}
}

func TestComputeDeterministic(t *testing.T) {
	c, _ := shapes.NewCassiniOval(0, 0, 7, 5, math.Pi/4)
	g, phi, solid := setup(t, 33, 29, 0.6, r2.Vec{X: -10, Y: -9}, c)
	f1, err := ComputeN(g, phi, solid, 1)
	require.NoError(t, err)
	for _, np := range []int{2, 5, 13, 0} {
		f, err := ComputeN(g, phi, solid, np)
		require.NoError(t, err)
		require.Equal(t, len(f1.Data), len(f.Data))
		for k := range f1.Data {
			assert.Equal(t, math.Float64bits(f1.Data[k]), math.Float64bits(f.Data[k]))
		}
	}
}

func TestDegenerateLinks(t *testing.T) {
	var buf bytes.Buffer
	utils.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer utils.SetLogger(nil)

	g, err := grids.NewGrid(3, 3, 1.0, r2.Vec{})
	require.NoError(t, err)
	// A mask that disagrees with phi: the center is marked solid with the
	// same value as its neighbors, and the east cell holds a smaller value
	phi := mat.NewDense(3, 3, []float64{
		1, 1, 1,
		1, 1, 0.5,
		1, 1, 1,
	})
	solid, err := raster.MaskFromBytes(3, 3, []byte{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	})
	require.NoError(t, err)
	f, err := Compute(g, phi, solid)
	require.NoError(t, err)
	// Equal end values give no crossing
	_, ok := f.Q(0, 1, d2q9.East)
	assert.False(t, ok)
	_, ok = f.Q(0, 0, d2q9.NorthEast)
	assert.False(t, ok)
	// A negative fraction is clamped to the fluid node
	q, ok := f.Q(2, 1, d2q9.West)
	assert.True(t, ok)
	assert.Equal(t, 0., q)
	assert.Contains(t, buf.String(), "degenerate boundary link")
	assert.Equal(t, 1, f.Count())
}

func TestShapeMismatch(t *testing.T) {
	g, _ := grids.NewGrid(4, 3, 1.0, r2.Vec{})
	solid, _ := raster.MaskFromBytes(4, 3, make([]byte, 12))
	_, err := Compute(g, mat.NewDense(4, 3, nil), solid)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	small, _ := raster.MaskFromBytes(3, 3, make([]byte, 9))
	_, err = Compute(g, mat.NewDense(3, 4, nil), small)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	_, err = NewFieldFromSlabs([]*mat.Dense{mat.NewDense(3, 4, nil)})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestSlabs(t *testing.T) {
	c, _ := shapes.NewCircle(0, 0, 3.2)
	g, phi, solid := setup(t, 12, 10, 1.0, r2.Vec{X: -6, Y: -5}, c)
	f, err := Compute(g, phi, solid)
	require.NoError(t, err)
	var slabs []*mat.Dense
	for _, dir := range d2q9.Links() {
		slab := f.Slab(dir)
		r, cols := slab.Dims()
		assert.Equal(t, g.Ny, r)
		assert.Equal(t, g.Nx, cols)
		slabs = append(slabs, slab)
	}
	f2, err := NewFieldFromSlabs(slabs)
	require.NoError(t, err)
	assert.Equal(t, f.Nx, f2.Nx)
	assert.Equal(t, f.Ny, f2.Ny)
	for k := range f.Data {
		assert.Equal(t, math.Float64bits(f.Data[k]), math.Float64bits(f2.Data[k]))
	}
}
