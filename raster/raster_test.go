package raster

import (
	"math"
	"testing"

	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/shapes"
	"github.com/notargets/lb2dgeom/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestRasterize(t *testing.T) {
	{ // Small circle on a 5x5 grid centered at the origin
		g, err := grids.NewGrid(5, 5, 1.0, r2.Vec{X: -2.5, Y: -2.5})
		require.NoError(t, err)
		c, err := shapes.NewCircle(0, 0, 1.5)
		require.NoError(t, err)
		phi, solid := Rasterize(g, c)
		r, cols := phi.Dims()
		assert.Equal(t, 5, r)
		assert.Equal(t, 5, cols)
		assert.InDelta(t, -1.5, phi.At(2, 2), 1e-12)
		assert.True(t, solid.At(2, 2))
		for _, corner := range [][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}} {
			assert.True(t, phi.At(corner[1], corner[0]) > 0)
			assert.False(t, solid.At(corner[0], corner[1]))
		}
		// Diagonal neighbors sit at sqrt(2) < 1.5 from the center
		assert.Equal(t, 9, solid.Count())
		assert.Equal(t, ".....\n.###.\n.###.\n.###.\n.....\n", solid.String())
	}
	{ // phi is -r at the circle center and zero at distance r along each axis
		g, err := grids.NewGrid(21, 21, 1.0, r2.Vec{X: -10.5, Y: -10.5})
		require.NoError(t, err)
		c, err := shapes.NewCircle(0, 0, 5)
		require.NoError(t, err)
		phi, solid := Rasterize(g, c)
		assert.InDelta(t, -5.0, phi.At(10, 10), 1e-12)
		for _, ij := range [][2]int{{15, 10}, {5, 10}, {10, 15}, {10, 5}} {
			assert.InDelta(t, 0.0, phi.At(ij[1], ij[0]), 1e-12)
		}
		assert.True(t, solid.Equal(MaskFromPhi(phi)))
	}
}

func TestSolidIsPhiNonPositive(t *testing.T) {
	g, err := grids.NewGrid(60, 40, 0.5, r2.Vec{X: -15, Y: -10})
	require.NoError(t, err)
	ell, err := shapes.NewEllipse(1, -1, 8, 3, math.Pi/5)
	require.NoError(t, err)
	cas, err := shapes.NewCassiniOval(-4, 2, 6, 4, 0.3)
	require.NoError(t, err)
	for _, s := range []shapes.Shape{ell, cas, shapes.NewUnion(ell, cas)} {
		phi, solid := Rasterize(g, s)
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				assert.Equal(t, phi.At(j, i) <= 0, solid.At(i, j))
			}
		}
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	g, err := grids.NewGrid(37, 23, 0.7, r2.Vec{X: -13, Y: -8})
	require.NoError(t, err)
	c, _ := shapes.NewCircle(0, 0, 5)
	r, _ := shapes.NewRoundedRectangle(3, 1, 10, 6, 1.5, 1.5, 0.4)
	s := shapes.NewDifference(r, c)
	phi1, solid1 := RasterizeN(g, s, 1)
	for _, np := range []int{2, 3, 7, 64, 0} {
		phi, solid := RasterizeN(g, s, np)
		assert.True(t, mat.Equal(phi1, phi), "np = %d", np)
		assert.True(t, solid1.Equal(solid), "np = %d", np)
	}
}

func TestDifferenceMask(t *testing.T) {
	g, err := grids.NewGrid(120, 80, 1.0, r2.Vec{X: -60, Y: -40})
	require.NoError(t, err)
	a, _ := shapes.NewCircle(0, 0, 25)
	b, _ := shapes.NewRectangle(0, 0, 20, 20, 0)
	_, solidA := Rasterize(g, a)
	_, solidB := Rasterize(g, b)
	_, solidD := Rasterize(g, shapes.NewDifference(a, b))
	assert.True(t, solidA.AndNot(solidB).Equal(solidD))
	assert.Equal(t, solidA.Count()-solidB.Count(), solidD.Count())
}

func TestMask(t *testing.T) {
	_, err := MaskFromBytes(2, 2, []byte{1, 0, 0})
	assert.Error(t, err)
	m, err := MaskFromBytes(2, 2, []byte{1, 0, 0, 7})
	require.NoError(t, err)
	assert.True(t, m.At(0, 0))
	assert.True(t, m.At(1, 1))
	assert.False(t, m.At(1, 0))
	assert.Equal(t, []byte{1, 0, 0, 1}, m.Bytes())
	assert.Equal(t, 2, m.Count())
	o, _ := MaskFromBytes(2, 1, []byte{1, 0})
	assert.False(t, m.Equal(o))
}

func TestClassifyCells(t *testing.T) {
	{ // A single solid cell is ringed by near-wall cells
		solid, _ := MaskFromBytes(3, 3, []byte{
			0, 0, 0,
			0, 1, 0,
			0, 0, 0,
		})
		ct := ClassifyCells(solid)
		assert.Equal(t, []int{
			1, 1, 1,
			1, 2, 1,
			1, 1, 1,
		}, ct.Codes(types.DefaultCellCodes))
		assert.Equal(t, 0, ct.Count(types.Fluid))
	}
	{ // Diagonal neighbors count as near-wall
		solid, _ := MaskFromBytes(4, 4, []byte{
			1, 1, 0, 0,
			1, 1, 0, 0,
			0, 0, 0, 0,
			0, 0, 0, 0,
		})
		ct := ClassifyCells(solid)
		assert.Equal(t, types.NearWall, ct.At(2, 2))
		assert.Equal(t, types.Fluid, ct.At(3, 3))
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				assert.Equal(t, types.Wall, ct.At(i, j))
			}
		}
		assert.Equal(t, 4, ct.Count(types.Wall))
		assert.Equal(t, 5, ct.Count(types.NearWall))
	}
	{ // Custom codes
		solid, _ := MaskFromBytes(3, 3, []byte{
			1, 0, 0,
			0, 0, 0,
			0, 0, 0,
		})
		codes := ClassifyCells(solid).Codes(types.CellCodes{Fluid: 10, NearWall: 20, Wall: 255})
		assert.Equal(t, 255, codes[0])
		assert.Equal(t, 20, codes[1])
		assert.Equal(t, 20, codes[4])
		assert.Equal(t, 10, codes[8])
	}
}
