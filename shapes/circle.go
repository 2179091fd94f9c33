package shapes

import "math"

// Circle is the disk of radius R about (X0, Y0):
//
//	phi(x, y) = sqrt((x-x0)^2 + (y-y0)^2) - r
type Circle struct {
	x0, y0, r float64
}

func NewCircle(x0, y0, r float64) (c *Circle, err error) {
	if err = checkFinite("circle", []string{"x0", "y0", "r"}, x0, y0, r); err != nil {
		return
	}
	if err = checkPositive("circle", "r", r); err != nil {
		return
	}
	c = &Circle{x0: x0, y0: y0, r: r}
	return
}

func (c *Circle) SDF(x, y float64) float64 {
	return math.Hypot(x-c.x0, y-c.y0) - c.r
}

func (c *Circle) isShape() {}
