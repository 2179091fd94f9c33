package shapes

import "math"

// Rectangle of width w and height h centered on (x0, y0), rotated by theta
// radians. In the local frame, with d = |p| - (w/2, h/2):
//
//	phi = |max(d, 0)| + min(max(d.x, d.y), 0)
type Rectangle struct {
	hw, hh float64
	f      frame
}

func NewRectangle(x0, y0, w, h, theta float64) (r *Rectangle, err error) {
	if err = checkFinite("rectangle", []string{"x0", "y0", "w", "h", "theta"},
		x0, y0, w, h, theta); err != nil {
		return
	}
	if err = checkPositive("rectangle", "w", w); err != nil {
		return
	}
	if err = checkPositive("rectangle", "h", h); err != nil {
		return
	}
	r = &Rectangle{hw: 0.5 * w, hh: 0.5 * h, f: newFrame(x0, y0, theta)}
	return
}

func (r *Rectangle) SDF(x, y float64) float64 {
	lx, ly := r.f.local(x, y)
	return boxSDF(lx, ly, r.hw, r.hh)
}

func (r *Rectangle) isShape() {}

func boxSDF(x, y, hw, hh float64) float64 {
	dx := math.Abs(x) - hw
	dy := math.Abs(y) - hh
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside
}
