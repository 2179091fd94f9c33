// Package shapes provides analytic 2-D solids described by signed distance
// functions: negative inside the solid, zero on its boundary and positive in
// the fluid.
//
// The set of shapes is closed. Primitives (Circle, Ellipse, Rectangle,
// RoundedRectangle, CassiniOval) are built with their New* constructors, which
// validate the geometric parameters, and are combined with Union, Intersection,
// Difference and Rotated into new shapes that can be combined again.
package shapes

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var ErrInvalidShape = errors.New("invalid shape")

// Shape is anything with a signed distance function on the plane. SDF must
// be total and continuous; rasterization and the Bouzidi pass rely on it near
// the zero level set.
type Shape interface {
	SDF(x, y float64) float64
	isShape()
}

// Contains reports whether (x, y) lies inside or on the boundary of s
func Contains(s Shape, x, y float64) bool {
	return s.SDF(x, y) <= 0
}

// frame maps world points into a primitive's axis-aligned local frame: the
// query point is translated to the shape center and rotated by -theta.
type frame struct {
	center r2.Vec
	theta  float64
	inv    r2.Rotation
}

func newFrame(x0, y0, theta float64) frame {
	c := r2.Vec{X: x0, Y: y0}
	return frame{
		center: c,
		theta:  theta,
		inv:    r2.NewRotation(-theta, c),
	}
}

func (f frame) local(x, y float64) (lx, ly float64) {
	p := r2.Vec{X: x, Y: y}
	if f.theta != 0 {
		p = f.inv.Rotate(p)
	}
	return p.X - f.center.X, p.Y - f.center.Y
}

func invalid(shape, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidShape, shape, fmt.Sprintf(format, args...))
}

func checkFinite(shape string, names []string, vals ...float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(shape, "%s must be finite, got %v", names[i], v)
		}
	}
	return nil
}

func checkPositive(shape, name string, v float64) error {
	if !(v > 0) {
		return invalid(shape, "%s must be positive, got %v", name, v)
	}
	return nil
}
