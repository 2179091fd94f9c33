package shapes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// The boolean combinators below are exact in sign but only bound the true
// Euclidean distance away from the boundary, which is all rasterization and
// link-fraction search need.

// Union is inside where either child is inside: min(a, b)
type Union struct {
	A, B Shape
}

func NewUnion(a, b Shape) *Union { return &Union{A: a, B: b} }

func (u *Union) SDF(x, y float64) float64 {
	return math.Min(u.A.SDF(x, y), u.B.SDF(x, y))
}

func (u *Union) isShape() {}

// Intersection is inside where both children are inside: max(a, b)
type Intersection struct {
	A, B Shape
}

func NewIntersection(a, b Shape) *Intersection { return &Intersection{A: a, B: b} }

func (i *Intersection) SDF(x, y float64) float64 {
	return math.Max(i.A.SDF(x, y), i.B.SDF(x, y))
}

func (i *Intersection) isShape() {}

// Difference is A with B removed: max(a, -b)
type Difference struct {
	A, B Shape
}

func NewDifference(a, b Shape) *Difference { return &Difference{A: a, B: b} }

func (d *Difference) SDF(x, y float64) float64 {
	return math.Max(d.A.SDF(x, y), -d.B.SDF(x, y))
}

func (d *Difference) isShape() {}

// UnionAll folds shapes left to right with Union
func UnionAll(shapes ...Shape) (s Shape, err error) {
	return fold("union", shapes, func(a, b Shape) Shape { return NewUnion(a, b) })
}

// IntersectionAll folds shapes left to right with Intersection
func IntersectionAll(shapes ...Shape) (s Shape, err error) {
	return fold("intersection", shapes, func(a, b Shape) Shape { return NewIntersection(a, b) })
}

func fold(name string, shapes []Shape, op func(a, b Shape) Shape) (s Shape, err error) {
	if len(shapes) == 0 {
		err = invalid(name, "needs at least one shape")
		return
	}
	for i, sh := range shapes {
		if sh == nil {
			err = invalid(name, "shape %d is nil", i)
			return
		}
	}
	s = shapes[0]
	for _, sh := range shapes[1:] {
		s = op(s, sh)
	}
	return
}

// Rotated turns any shape by Theta radians about Pivot. Queries are rotated by
// -Theta about the pivot and handed to the wrapped shape.
type Rotated struct {
	Shape Shape
	Theta float64
	Pivot r2.Vec
	inv   r2.Rotation
}

func NewRotated(s Shape, theta float64, pivot r2.Vec) (r *Rotated, err error) {
	if s == nil {
		err = invalid("rotated", "shape is nil")
		return
	}
	if err = checkFinite("rotated", []string{"theta", "pivot.x", "pivot.y"},
		theta, pivot.X, pivot.Y); err != nil {
		return
	}
	r = &Rotated{
		Shape: s,
		Theta: theta,
		Pivot: pivot,
		inv:   r2.NewRotation(-theta, pivot),
	}
	return
}

func (r *Rotated) SDF(x, y float64) float64 {
	p := r.inv.Rotate(r2.Vec{X: x, Y: y})
	return r.Shape.SDF(p.X, p.Y)
}

func (r *Rotated) isShape() {}
