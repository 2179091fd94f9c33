package shapes

import (
	"math"
	"math/cmplx"
)

// CassiniOval is the locus of points whose distances to two foci at (±c, 0)
// in the local frame multiply to a^2:
//
//	f(x, y) = (x^2 + y^2)^2 - 2c^2(x^2 - y^2) + c^4 - a^4 = 0
//
// For a > c the curve is a single loop, for a < c it splits into two loops.
// a == c is the lemniscate, which crosses itself at the center and is
// rejected.
type CassiniOval struct {
	a, c float64
	f    frame
}

// cassiniSamples is the number of arc samples used to bracket foot points
const cassiniSamples = 512

func NewCassiniOval(x0, y0, a, c, theta float64) (co *CassiniOval, err error) {
	const name = "cassini oval"
	if err = checkFinite(name, []string{"x0", "y0", "a", "c", "theta"},
		x0, y0, a, c, theta); err != nil {
		return
	}
	if err = checkPositive(name, "a", a); err != nil {
		return
	}
	if c < 0 {
		err = invalid(name, "c must not be negative, got %v", c)
		return
	}
	if a == c {
		err = invalid(name, "a == c (%v) is a self-intersecting lemniscate", a)
		return
	}
	co = &CassiniOval{a: a, c: c, f: newFrame(x0, y0, theta)}
	return
}

func (co *CassiniOval) implicit(x, y float64) float64 {
	var (
		c2 = co.c * co.c
		r2 = x*x + y*y
	)
	return r2*r2 - 2*c2*(x*x-y*y) + c2*c2 - co.a*co.a*co.a*co.a
}

// SDF signs the distance to the curve by f. The curve is symmetric in both
// local axes, so the distance is taken from the point folded into the first
// quadrant.
func (co *CassiniOval) SDF(x, y float64) float64 {
	lx, ly := co.f.local(x, y)
	fv := co.implicit(lx, ly)
	if fv == 0 {
		return 0
	}
	d := co.distance(complex(math.Abs(lx), math.Abs(ly)))
	if fv < 0 {
		return -d
	}
	return d
}

// arc returns the first quadrant branch z(phi) = sqrt(c^2 + a^2 e^(i phi)),
// phi in [0, pi], and its derivative. z(0) is the outer crossing of the x
// axis; z(pi) is the inner x crossing for a < c and the y crossing for a > c.
func (co *CassiniOval) arc(phi float64) (z, dz complex128) {
	var (
		a2 = co.a * co.a
		e  = complex(math.Cos(phi), math.Sin(phi))
	)
	z = cmplx.Sqrt(complex(co.c*co.c, 0) + complex(a2, 0)*e)
	dz = complex(0, a2) * e / (2 * z)
	return
}

// distance from p to the first quadrant arc. Samples bracket every sign
// change of d|z-p|^2/dphi from falling to rising; each is bisected to machine
// precision.
func (co *CassiniOval) distance(p complex128) float64 {
	at := func(phi float64) (d, slope float64) {
		z, dz := co.arc(phi)
		u := z - p
		return cmplx.Abs(u), real(u)*real(dz) + imag(u)*imag(dz)
	}
	h := math.Pi / cassiniSamples
	phi0 := 0.
	best, g0 := at(phi0)
	for k := 1; k <= cassiniSamples; k++ {
		phi1 := float64(k) * h
		if k == cassiniSamples {
			phi1 = math.Pi
		}
		d1, g1 := at(phi1)
		best = math.Min(best, d1)
		if g0 < 0 && g1 >= 0 {
			lo, hi := phi0, phi1
			for n := 0; n < 200; n++ {
				mid := 0.5 * (lo + hi)
				if mid == lo || mid == hi {
					break
				}
				if _, g := at(mid); g < 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			dl, _ := at(lo)
			dh, _ := at(hi)
			best = math.Min(best, math.Min(dl, dh))
		}
		phi0, g0 = phi1, g1
	}
	return best
}

func (co *CassiniOval) isShape() {}
