package geomio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/notargets/lb2dgeom/bouzidi"
	"github.com/notargets/lb2dgeom/d2q9"
	"github.com/notargets/lb2dgeom/raster"
	"github.com/notargets/lb2dgeom/types"
)

type Selection string

const (
	SelectAll      Selection = "all"
	SelectNearWall Selection = "near_wall"
)

// SaveTxt writes one whitespace separated row per selected cell,
//
//	i j type q1 q2 q3 q4 q5 q6 q7 q8
//
// with rows ordered by j then i, types written with codes, and sentinel
// fractions written as -1.
func SaveTxt(w io.Writer, cells *raster.CellTypes, codes types.CellCodes, f *bouzidi.Field,
	selection Selection, header bool) (err error) {
	if cells.Nx != f.Nx || cells.Ny != f.Ny {
		return fmt.Errorf("%w: cell types are %dx%d, bouzidi is %dx%d",
			bouzidi.ErrShapeMismatch, cells.Nx, cells.Ny, f.Nx, f.Ny)
	}
	switch selection {
	case SelectAll, SelectNearWall:
	default:
		return fmt.Errorf("unknown selection %q, expected %q or %q", selection, SelectAll, SelectNearWall)
	}
	bw := bufio.NewWriter(w)
	if header {
		bw.WriteString("i j type")
		for _, dir := range d2q9.Links() {
			fmt.Fprintf(bw, " q%d", dir)
		}
		bw.WriteByte('\n')
	}
	for j := 0; j < f.Ny; j++ {
		for i := 0; i < f.Nx; i++ {
			ct := cells.At(i, j)
			if selection == SelectNearWall && ct != types.NearWall {
				continue
			}
			fmt.Fprintf(bw, "%d %d %d", i, j, codes.Code(ct))
			for _, dir := range d2q9.Links() {
				q := f.Raw(i, j, dir)
				if math.IsNaN(q) {
					q = -1
				}
				bw.WriteByte(' ')
				bw.WriteString(strconv.FormatFloat(q, 'g', -1, 64))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
