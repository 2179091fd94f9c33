package shapes

import (
	"errors"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSDFXAdapters(t *testing.T) {
	{ // sdfx solid rasterized as a shape
		c2, err := sdf.Circle2D(2)
		require.NoError(t, err)
		s, err := FromSDF2(c2)
		require.NoError(t, err)
		c := mustCircle(t, 0, 0, 2)
		for _, p := range samplePoints() {
			assert.InDelta(t, c.SDF(p.X, p.Y), s.SDF(p.X, p.Y), 1e-9)
		}
		_, err = FromSDF2(nil)
		assert.True(t, errors.Is(err, ErrInvalidShape))
	}
	{ // A square polygon is the rectangle, in either winding order
		square := []r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
		ccw, err := NewPolygon(square)
		require.NoError(t, err)
		cw, err := NewPolygon([]r2.Vec{square[3], square[2], square[1], square[0]})
		require.NoError(t, err)
		r, err := NewRectangle(0, 0, 2, 2, 0)
		require.NoError(t, err)
		for _, p := range samplePoints() {
			assert.InDelta(t, r.SDF(p.X, p.Y), ccw.SDF(p.X, p.Y), 1e-9)
			assert.InDelta(t, r.SDF(p.X, p.Y), cw.SDF(p.X, p.Y), 1e-9)
		}
	}
	{ // Triangle distances
		tri, err := NewPolygon([]r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}})
		require.NoError(t, err)
		assert.InDelta(t, -0.5, tri.SDF(0.5, 1), 1e-9)
		assert.InDelta(t, 1, tri.SDF(2, -1), 1e-9)
		assert.InDelta(t, math.Sqrt2, tri.SDF(-1, -1), 1e-9)
		// The hypotenuse 3x + 4y = 12 is 1 away from 3x + 4y = 17
		assert.InDelta(t, 1, tri.SDF(3, 2), 1e-9)
	}
	{ // Invalid vertex lists
		_, err := NewPolygon([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}})
		assert.True(t, errors.Is(err, ErrInvalidShape))
		_, err = NewPolygon([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: math.NaN()}, {X: 0, Y: 1}})
		assert.True(t, errors.Is(err, ErrInvalidShape))
		assert.Contains(t, err.Error(), "vertices[1].y")
	}
}
