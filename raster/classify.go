package raster

import (
	"github.com/notargets/lb2dgeom/types"
)

// CellTypes holds a classification of every cell, row-major by j
type CellTypes struct {
	Nx, Ny int
	cells  []types.CellType
}

// ClassifyCells marks solid cells as walls, fluid cells with at least one
// solid cell among their 8 neighbors as near-wall, and the rest as fluid.
func ClassifyCells(solid *Mask) (ct *CellTypes) {
	ct = &CellTypes{Nx: solid.Nx, Ny: solid.Ny, cells: make([]types.CellType, len(solid.data))}
	for j := 0; j < solid.Ny; j++ {
		for i := 0; i < solid.Nx; i++ {
			k := j*solid.Nx + i
			switch {
			case solid.data[k]:
				ct.cells[k] = types.Wall
			case touchesSolid(solid, i, j):
				ct.cells[k] = types.NearWall
			default:
				ct.cells[k] = types.Fluid
			}
		}
	}
	return
}

func touchesSolid(solid *Mask, i, j int) bool {
	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			ii, jj := i+di, j+dj
			if ii < 0 || ii >= solid.Nx || jj < 0 || jj >= solid.Ny {
				continue
			}
			if solid.At(ii, jj) {
				return true
			}
		}
	}
	return false
}

func (ct *CellTypes) At(i, j int) types.CellType {
	return ct.cells[j*ct.Nx+i]
}

// Codes returns the integer code of every cell, row-major by j
func (ct *CellTypes) Codes(cc types.CellCodes) (codes []int) {
	codes = make([]int, len(ct.cells))
	for k, c := range ct.cells {
		codes[k] = cc.Code(c)
	}
	return
}

// Count returns how many cells have type t
func (ct *CellTypes) Count(t types.CellType) (n int) {
	for _, c := range ct.cells {
		if c == t {
			n++
		}
	}
	return
}
