package grids

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewGrid(t *testing.T) {
	{ // Invalid configurations name the offending parameter
		cases := []struct {
			nx, ny int
			dx     float64
			origin r2.Vec
			param  string
		}{
			{0, 5, 1, r2.Vec{}, "nx"},
			{-2, 5, 1, r2.Vec{}, "nx"},
			{5, 0, 1, r2.Vec{}, "ny"},
			{5, 5, 0, r2.Vec{}, "dx"},
			{5, 5, -0.5, r2.Vec{}, "dx"},
			{5, 5, math.NaN(), r2.Vec{}, "dx"},
			{5, 5, math.Inf(1), r2.Vec{}, "dx"},
			{5, 5, 1, r2.Vec{X: math.NaN()}, "origin"},
		}
		for _, c := range cases {
			g, err := NewGrid(c.nx, c.ny, c.dx, c.origin)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGrid)
			assert.Contains(t, err.Error(), c.param)
		}
	}
	{ // Cell center convention: origin is the lower-left corner
		g, err := NewGrid(5, 4, 0.5, r2.Vec{X: -1, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, r2.Vec{X: -0.75, Y: 2.25}, g.CellCenter(0, 0))
		assert.Equal(t, r2.Vec{X: 1.25, Y: 3.75}, g.CellCenter(4, 3))
		min, max := g.Extent()
		assert.Equal(t, r2.Vec{X: -1, Y: 2}, min)
		assert.Equal(t, r2.Vec{X: 1.5, Y: 4}, max)
		assert.Equal(t, 20, g.NumCells())
	}
}

func TestGridIndexing(t *testing.T) {
	g, err := NewGrid(5, 5, 1.0, r2.Vec{X: -2.5, Y: -2.5})
	require.NoError(t, err)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			ii, jj, ok := g.CellIndex(g.CellCenter(i, j))
			assert.True(t, ok)
			assert.Equal(t, i, ii)
			assert.Equal(t, j, jj)
		}
	}
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, g.CellCenter(2, 2))
	_, _, ok := g.CellIndex(r2.Vec{X: 3, Y: 0})
	assert.False(t, ok)
	assert.True(t, g.Contains(4, 0))
	assert.False(t, g.Contains(-1, 0))
	assert.False(t, g.Contains(0, 5))

	X, Y := g.Coords()
	r, c := X.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, -2., X.At(0, 0))
	assert.Equal(t, 2., X.At(0, 4))
	assert.Equal(t, 2., Y.At(4, 0))

	assert.NoError(t, g.CheckField("phi", g.NewField()))
	assert.Error(t, g.CheckField("phi", mat.NewDense(4, 5, nil)))
	assert.Equal(t, "Grid[5x5, dx=1, origin=(-2.5, -2.5)]", g.String())
}
