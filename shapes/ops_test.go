package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestBooleanOps(t *testing.T) {
	c, err := NewCircle(0, 0, 1)
	require.NoError(t, err)
	r, err := NewRectangle(0, 0, 2, 2, 0)
	require.NoError(t, err)
	{ // Point checks
		u := NewUnion(c, r)
		i := NewIntersection(c, r)
		d := NewDifference(r, c)
		assert.True(t, u.SDF(0, 0) < 0)
		assert.True(t, i.SDF(0, 0) < 0)
		assert.True(t, d.SDF(0.9, 0.9) < 0)
		assert.True(t, d.SDF(0, 0) > 0)
	}
	{ // Pointwise identities
		e, err := NewEllipse(0.5, -0.3, 3, 1.5, 0.4)
		require.NoError(t, err)
		co, err := NewCassiniOval(-1, 0.5, 2.5, 2, -0.2)
		require.NoError(t, err)
		var (
			u = NewUnion(e, co)
			i = NewIntersection(e, co)
			d = NewDifference(e, co)
		)
		for _, p := range samplePoints() {
			a, b := e.SDF(p.X, p.Y), co.SDF(p.X, p.Y)
			assert.Equal(t, math.Min(a, b), u.SDF(p.X, p.Y))
			assert.Equal(t, math.Max(a, b), i.SDF(p.X, p.Y))
			assert.Equal(t, math.Max(a, -b), d.SDF(p.X, p.Y))
		}
	}
	{ // Composites compose
		ring := NewDifference(mustCircle(t, 0, 0, 3), mustCircle(t, 0, 0, 2))
		bar, err := NewRectangle(0, 0, 8, 1, 0)
		require.NoError(t, err)
		s := NewUnion(ring, bar)
		assert.True(t, s.SDF(0, 0) < 0)     // bar
		assert.True(t, s.SDF(0, 2.5) < 0)   // ring
		assert.True(t, s.SDF(0, 1.5) > 0)   // hole
		assert.True(t, s.SDF(3.9, 0) < 0)   // bar beyond ring
		assert.Equal(t, 0.5, s.SDF(0, 3.5)) // outside ring
	}
}

func TestFolds(t *testing.T) {
	var (
		a = mustCircle(t, -2, 0, 1)
		b = mustCircle(t, 0, 0, 1)
		c = mustCircle(t, 2, 0, 1)
	)
	u, err := UnionAll(a, b, c)
	require.NoError(t, err)
	for _, p := range samplePoints() {
		want := math.Min(math.Min(a.SDF(p.X, p.Y), b.SDF(p.X, p.Y)), c.SDF(p.X, p.Y))
		assert.Equal(t, want, u.SDF(p.X, p.Y))
	}
	single, err := IntersectionAll(b)
	require.NoError(t, err)
	assert.Equal(t, Shape(b), single)
	_, err = IntersectionAll(a, nil)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestRotated(t *testing.T) {
	r, err := NewRectangle(1, 2, 4, 1, 0)
	require.NoError(t, err)
	builtin, err := NewRectangle(1, 2, 4, 1, 0.6)
	require.NoError(t, err)
	wrapped, err := NewRotated(r, 0.6, r2.Vec{X: 1, Y: 2})
	require.NoError(t, err)
	for _, p := range samplePoints() {
		assert.InDelta(t, builtin.SDF(p.X, p.Y), wrapped.SDF(p.X, p.Y), 1e-12)
	}
	// Rotating about a remote pivot moves the shape
	c := mustCircle(t, 2, 0, 0.5)
	rc, err := NewRotated(c, math.Pi/2, r2.Vec{})
	require.NoError(t, err)
	assert.InDelta(t, -0.5, rc.SDF(0, 2), 1e-12)
	assert.True(t, rc.SDF(2, 0) > 0)
}

func mustCircle(t *testing.T, x0, y0, r float64) *Circle {
	c, err := NewCircle(x0, y0, r)
	require.NoError(t, err)
	return c
}
