package bouzidi

import (
	"fmt"
	"math"

	"github.com/notargets/lb2dgeom/d2q9"
	"gonum.org/v1/gonum/mat"
)

// Sentinel marks a link with no boundary crossing in the stored data
var Sentinel = math.NaN()

// Field holds a boundary fraction for every cell and every moving D2Q9
// direction. Data is laid out as (j*Nx+i)*8 + dir-1.
type Field struct {
	Nx, Ny int
	Data   []float64
}

// Link is one defined boundary link, from fluid cell (I, J) toward its solid
// neighbor along Dir
type Link struct {
	I, J int
	Dir  d2q9.Direction
	Q    float64
}

func newField(nx, ny int) (f *Field) {
	f = &Field{Nx: nx, Ny: ny, Data: make([]float64, nx*ny*d2q9.NumLinks)}
	for k := range f.Data {
		f.Data[k] = Sentinel
	}
	return
}

// NewFieldFromSlabs assembles a field from one Ny x Nx slab per moving
// direction, slabs[0] being direction 1
func NewFieldFromSlabs(slabs []*mat.Dense) (f *Field, err error) {
	if len(slabs) != d2q9.NumLinks {
		err = fmt.Errorf("%w: need %d slabs, got %d", ErrShapeMismatch, d2q9.NumLinks, len(slabs))
		return
	}
	ny, nx := slabs[0].Dims()
	f = newField(nx, ny)
	for n, slab := range slabs {
		if r, c := slab.Dims(); r != ny || c != nx {
			f, err = nil, fmt.Errorf("%w: slab %d is %dx%d, want %dx%d", ErrShapeMismatch, n+1, r, c, ny, nx)
			return
		}
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				f.Data[f.index(i, j, d2q9.Direction(n+1))] = slab.At(j, i)
			}
		}
	}
	return
}

func (f *Field) index(i, j int, dir d2q9.Direction) int {
	return (j*f.Nx+i)*d2q9.NumLinks + dir.LinkIndex()
}

// Q returns the boundary fraction of cell (i, j) along dir, with ok false
// where the link does not cross the boundary
func (f *Field) Q(i, j int, dir d2q9.Direction) (q float64, ok bool) {
	if dir == d2q9.Rest || int(dir) >= d2q9.Q {
		return
	}
	q = f.Data[f.index(i, j, dir)]
	if math.IsNaN(q) {
		return 0, false
	}
	return q, true
}

// Raw returns the stored value, NaN for sentinels
func (f *Field) Raw(i, j int, dir d2q9.Direction) float64 {
	return f.Data[f.index(i, j, dir)]
}

// Slab copies one direction out as a Ny x Nx field
func (f *Field) Slab(dir d2q9.Direction) (slab *mat.Dense) {
	slab = mat.NewDense(f.Ny, f.Nx, nil)
	for j := 0; j < f.Ny; j++ {
		for i := 0; i < f.Nx; i++ {
			slab.Set(j, i, f.Raw(i, j, dir))
		}
	}
	return
}

// Links lists the defined links ordered by cell then direction
func (f *Field) Links() (links []Link) {
	for j := 0; j < f.Ny; j++ {
		for i := 0; i < f.Nx; i++ {
			for _, dir := range d2q9.Links() {
				if q, ok := f.Q(i, j, dir); ok {
					links = append(links, Link{I: i, J: j, Dir: dir, Q: q})
				}
			}
		}
	}
	return
}

// Count returns the number of defined links
func (f *Field) Count() (n int) {
	for _, q := range f.Data {
		if !math.IsNaN(q) {
			n++
		}
	}
	return
}

// Values returns the defined fractions in storage order
func (f *Field) Values() (qs []float64) {
	qs = make([]float64, 0, f.Count())
	for _, q := range f.Data {
		if !math.IsNaN(q) {
			qs = append(qs, q)
		}
	}
	return
}
