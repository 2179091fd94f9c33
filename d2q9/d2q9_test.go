package d2q9

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVelocitySet(t *testing.T) {
	{ // Lengths match the offsets
		for k := 0; k < Q; k++ {
			e := E[k]
			assert.Equal(t, math.Hypot(float64(e.X), float64(e.Y)), Lengths[k])
			assert.True(t, e.X >= -1 && e.X <= 1 && e.Y >= -1 && e.Y <= 1)
		}
		assert.Equal(t, 0., Rest.Length())
		assert.Equal(t, 1., North.Length())
		assert.Equal(t, math.Sqrt2, SouthWest.Length())
	}
	{ // Opposites reverse the offset and are involutions
		for k := 0; k < Q; k++ {
			d := Direction(k)
			o := d.Opposite()
			assert.Equal(t, Vector{-d.Offset().X, -d.Offset().Y}, o.Offset())
			assert.Equal(t, d, o.Opposite())
		}
	}
	{ // Weights sum to one
		var sum float64
		for _, w := range Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-15)
	}
	{ // Links exclude the rest direction and are all distinct
		links := Links()
		assert.Len(t, links, NumLinks)
		seen := make(map[Vector]bool)
		for i, d := range links {
			assert.NotEqual(t, Rest, d)
			assert.Equal(t, i, d.LinkIndex())
			seen[d.Offset()] = true
		}
		assert.Len(t, seen, NumLinks)
	}
	assert.Equal(t, "northeast", NorthEast.String())
	assert.Equal(t, "Direction(12)", Direction(12).String())
}
