package shapes

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SDF2 adapts a github.com/deadsy/sdfx 2-D solid so it can be rasterized like
// any other shape.
type SDF2 struct {
	s sdf.SDF2
}

func FromSDF2(s sdf.SDF2) (sh *SDF2, err error) {
	if s == nil {
		err = invalid("sdfx", "SDF2 is nil")
		return
	}
	sh = &SDF2{s: s}
	return
}

func (s *SDF2) SDF(x, y float64) float64 {
	return s.s.Evaluate(v2.Vec{X: x, Y: y})
}

func (s *SDF2) isShape() {}

// NewPolygon is the closed polygon through vertices, in either winding order.
// The distance is exact: sdfx measures it to the nearest edge and signs it by
// the winding number.
func NewPolygon(vertices []r2.Vec) (p *SDF2, err error) {
	const name = "polygon"
	if len(vertices) < 3 {
		err = invalid(name, "vertices needs at least 3 points, got %d", len(vertices))
		return
	}
	vs := make([]v2.Vec, len(vertices))
	for n, v := range vertices {
		if err = checkFinite(name, []string{fmt.Sprintf("vertices[%d].x", n), fmt.Sprintf("vertices[%d].y", n)},
			v.X, v.Y); err != nil {
			return
		}
		vs[n] = v2.Vec{X: v.X, Y: v.Y}
	}
	var s sdf.SDF2
	if s, err = sdf.Polygon2D(vs); err != nil {
		err = invalid(name, "vertices: %v", err)
		return
	}
	return FromSDF2(s)
}
