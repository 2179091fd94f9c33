package raster

import (
	"fmt"
	"strings"
)

// Mask is a read-only Nx x Ny boolean field, stored row-major by j.
type Mask struct {
	Nx, Ny int
	data   []bool
}

func newMask(nx, ny int) *Mask {
	return &Mask{Nx: nx, Ny: ny, data: make([]bool, nx*ny)}
}

// MaskFromBytes rebuilds a mask from one byte per cell, nonzero meaning solid
func MaskFromBytes(nx, ny int, b []byte) (m *Mask, err error) {
	if len(b) != nx*ny {
		err = fmt.Errorf("mask needs %d bytes for %dx%d, got %d", nx*ny, nx, ny, len(b))
		return
	}
	m = newMask(nx, ny)
	for k, v := range b {
		m.data[k] = v != 0
	}
	return
}

func (m *Mask) At(i, j int) bool {
	return m.data[j*m.Nx+i]
}

// Count returns the number of set cells
func (m *Mask) Count() (n int) {
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return
}

// Bytes returns one byte per cell, 1 for set and 0 otherwise
func (m *Mask) Bytes() (b []byte) {
	b = make([]byte, len(m.data))
	for k, v := range m.data {
		if v {
			b[k] = 1
		}
	}
	return
}

func (m *Mask) Equal(o *Mask) bool {
	if m.Nx != o.Nx || m.Ny != o.Ny {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}
	return true
}

// AndNot returns m AND NOT o, cellwise
func (m *Mask) AndNot(o *Mask) (r *Mask) {
	r = newMask(m.Nx, m.Ny)
	for k := range m.data {
		r.data[k] = m.data[k] && !o.data[k]
	}
	return
}

// String draws the mask with row Ny-1 on top, '#' for set cells
func (m *Mask) String() string {
	var sb strings.Builder
	for j := m.Ny - 1; j >= 0; j-- {
		for i := 0; i < m.Nx; i++ {
			if m.At(i, j) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
