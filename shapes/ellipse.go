package shapes

import "math"

// Ellipse with semi-axes a (local x) and b (local y), rotated by theta radians
// about its center. SDF is the true Euclidean distance to the boundary.
type Ellipse struct {
	a, b float64
	f    frame
}

func NewEllipse(x0, y0, a, b, theta float64) (e *Ellipse, err error) {
	if err = checkFinite("ellipse", []string{"x0", "y0", "a", "b", "theta"},
		x0, y0, a, b, theta); err != nil {
		return
	}
	if err = checkPositive("ellipse", "a", a); err != nil {
		return
	}
	if err = checkPositive("ellipse", "b", b); err != nil {
		return
	}
	e = &Ellipse{a: a, b: b, f: newFrame(x0, y0, theta)}
	return
}

func (e *Ellipse) SDF(x, y float64) float64 {
	lx, ly := e.f.local(x, y)
	return ellipseSDF(lx, ly, e.a, e.b)
}

func (e *Ellipse) isShape() {}

// ellipseSDF is the signed distance from the local point (x, y) to the
// axis-aligned ellipse with semi-axes a, b centered at the origin.
func ellipseSDF(x, y, a, b float64) float64 {
	var (
		y0, y1 = math.Abs(x), math.Abs(y)
		e0, e1 = a, b
	)
	if e0 < e1 {
		e0, e1 = e1, e0
		y0, y1 = y1, y0
	}
	d := ellipseDistance(e0, e1, y0, y1)
	if (x/a)*(x/a)+(y/b)*(y/b) < 1 {
		return -d
	}
	return d
}

// ellipseDistance returns the distance from (y0, y1) in the first quadrant to
// the ellipse with semi-axes e0 >= e1 > 0. The foot point is the root of a
// monotone function of one variable, bracketed and bisected to machine
// precision (D. Eberly, "Distance from a Point to an Ellipse").
func ellipseDistance(e0, e1, y0, y1 float64) float64 {
	if y1 > 0 {
		if y0 > 0 {
			var (
				z0 = y0 / e0
				z1 = y1 / e1
				g  = z0*z0 + z1*z1 - 1
			)
			if g == 0 {
				return 0
			}
			var (
				r0  = (e0 / e1) * (e0 / e1)
				rm1 = (e0*e0 - e1*e1) / (e1 * e1)
				u   = ellipseRoot(r0, rm1, z0, z1, g)
				x0  = r0 * y0 / (u + rm1)
				x1  = y1 / u
			)
			return math.Hypot(x0-y0, x1-y1)
		}
		return math.Abs(y1 - e1)
	}
	numer0, denom0 := e0*y0, e0*e0-e1*e1
	if numer0 < denom0 {
		xde0 := numer0 / denom0
		x0 := e0 * xde0
		x1 := e1 * math.Sqrt(1-xde0*xde0)
		return math.Hypot(x0-y0, x1)
	}
	return math.Abs(y0 - e0)
}

// ellipseRoot bisects for u = s + 1 rather than Eberly's s, so that u keeps
// its relative precision when y1 is tiny and the root sits next to s = -1.
// rm1 is r0 - 1.
func ellipseRoot(r0, rm1, z0, z1, g float64) (u float64) {
	const maxIter = 200
	var (
		n0 = r0 * z0
		u0 = z1
		u1 = 1.
	)
	if g >= 0 {
		u1 = math.Hypot(n0, z1)
	}
	for i := 0; i < maxIter; i++ {
		u = 0.5 * (u0 + u1)
		if u == u0 || u == u1 {
			break
		}
		ratio0 := n0 / (u + rm1)
		ratio1 := z1 / u
		g = ratio0*ratio0 + ratio1*ratio1 - 1
		switch {
		case g > 0:
			u0 = u
		case g < 0:
			u1 = u
		default:
			return
		}
	}
	return
}
