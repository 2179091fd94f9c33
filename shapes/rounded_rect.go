package shapes

import "math"

// RoundedRectangle is a w x h rectangle whose corners are quarter ellipses
// with radii rx (along x) and ry (along y). Radii are capped at w/2 and h/2.
// With rx == ry == r the SDF is the box distance of the rectangle shrunk by r,
// minus r.
type RoundedRectangle struct {
	hw, hh, rx, ry float64
	f              frame
}

func NewRoundedRectangle(x0, y0, w, h, rx, ry, theta float64) (r *RoundedRectangle, err error) {
	const name = "rounded rectangle"
	if err = checkFinite(name, []string{"x0", "y0", "w", "h", "rx", "ry", "theta"},
		x0, y0, w, h, rx, ry, theta); err != nil {
		return
	}
	if err = checkPositive(name, "w", w); err != nil {
		return
	}
	if err = checkPositive(name, "h", h); err != nil {
		return
	}
	if rx < 0 {
		err = invalid(name, "rx must not be negative, got %v", rx)
		return
	}
	if ry < 0 {
		err = invalid(name, "ry must not be negative, got %v", ry)
		return
	}
	if (rx == 0) != (ry == 0) {
		err = invalid(name, "rx and ry must both be zero or both positive, got %v, %v", rx, ry)
		return
	}
	r = &RoundedRectangle{
		hw: 0.5 * w,
		hh: 0.5 * h,
		rx: math.Min(rx, 0.5*w),
		ry: math.Min(ry, 0.5*h),
		f:  newFrame(x0, y0, theta),
	}
	return
}

func (r *RoundedRectangle) SDF(x, y float64) float64 {
	lx, ly := r.f.local(x, y)
	// q is measured from the corner centers of the shrunken rectangle
	qx := math.Abs(lx) - (r.hw - r.rx)
	qy := math.Abs(ly) - (r.hh - r.ry)
	if r.rx == r.ry {
		outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
		inside := math.Min(math.Max(qx, qy), 0)
		return outside + inside - r.rx
	}
	if qx > 0 && qy > 0 {
		return ellipseSDF(qx, qy, r.rx, r.ry)
	}
	return math.Max(qx-r.rx, qy-r.ry)
}

func (r *RoundedRectangle) isShape() {}
