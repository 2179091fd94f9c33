// Package viz renders geometry fields to PNG files. Images are drawn with y
// increasing upward, so cell (0, 0) is at the lower-left corner. Inputs are
// only read.
package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/gogpu/gg"
	"github.com/notargets/lb2dgeom/bouzidi"
	"github.com/notargets/lb2dgeom/d2q9"
	"github.com/notargets/lb2dgeom/raster"
	"github.com/notargets/lb2dgeom/utils"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	fluidColor    = gg.FromColor(colornames.Whitesmoke)
	solidColor    = gg.FromColor(colornames.Dimgray)
	sentinelColor = gg.FromColor(colornames.Lightgray)
	negColor      = gg.FromColor(colornames.Steelblue)
	posColor      = gg.FromColor(colornames.Firebrick)
	lowColor      = gg.FromColor(colornames.Midnightblue)
	highColor     = gg.FromColor(colornames.Gold)
	lineColor     = gg.FromColor(colornames.Black)
)

// Scale is the number of pixels per cell side used by the field plots
var Scale = 4

// canvas maps cells onto pixels with row Ny-1 at the top of the image
type canvas struct {
	dc     *gg.Context
	nx, ny int
	scale  int
}

func newCanvas(nx, ny int) *canvas {
	scale := Scale
	if scale < 1 {
		scale = 1
	}
	dc := gg.NewContext(nx*scale, ny*scale)
	dc.ClearWithColor(gg.White)
	return &canvas{dc: dc, nx: nx, ny: ny, scale: scale}
}

func (c *canvas) fillCell(i, j int, col gg.RGBA) {
	var (
		x0 = i * c.scale
		y0 = (c.ny - 1 - j) * c.scale
	)
	for y := y0; y < y0+c.scale; y++ {
		for x := x0; x < x0+c.scale; x++ {
			c.dc.SetPixel(x, y, col)
		}
	}
}

// edge draws the cell edge shared by (i, j) and its east or north neighbor
func (c *canvas) edge(i, j int, north bool) {
	s := float64(c.scale)
	if north {
		y := float64(c.ny-1-j) * s
		c.dc.DrawLine(float64(i)*s, y, float64(i+1)*s, y)
	} else {
		x := float64(i+1) * s
		c.dc.DrawLine(x, float64(c.ny-1-j)*s, x, float64(c.ny-j)*s)
	}
}

func (c *canvas) save(path string) (err error) {
	defer c.dc.Close()
	if err = c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	utils.Logger().Debug("wrote plot", "path", path)
	return
}

// PlotSolid draws solid cells dark on a light background
func PlotSolid(path string, solid *raster.Mask) error {
	c := newCanvas(solid.Nx, solid.Ny)
	for j := 0; j < solid.Ny; j++ {
		for i := 0; i < solid.Nx; i++ {
			col := fluidColor
			if solid.At(i, j) {
				col = solidColor
			}
			c.fillCell(i, j, col)
		}
	}
	return c.save(path)
}

// PlotPhi draws the signed distance with a diverging colormap centered on
// zero and traces the cell edges where phi changes sign
func PlotPhi(path string, phi mat.Matrix) (err error) {
	var (
		ny, nx = phi.Dims()
		c      = newCanvas(nx, ny)
		scale  float64
	)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if v := math.Abs(phi.At(j, i)); v > scale && !math.IsInf(v, 0) {
				scale = v
			}
		}
	}
	if scale == 0 {
		scale = 1
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			t := math.Max(-1, math.Min(1, phi.At(j, i)/scale))
			col := gg.White.Lerp(posColor, t)
			if t < 0 {
				col = gg.White.Lerp(negColor, -t)
			}
			c.fillCell(i, j, col)
		}
	}
	c.dc.SetColor(lineColor.Color())
	c.dc.SetLineWidth(1)
	var edges int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			inside := phi.At(j, i) <= 0
			if i+1 < nx && inside != (phi.At(j, i+1) <= 0) {
				c.edge(i, j, false)
				edges++
			}
			if j+1 < ny && inside != (phi.At(j+1, i) <= 0) {
				c.edge(i, j, true)
				edges++
			}
		}
	}
	if edges > 0 {
		if err = c.dc.Stroke(); err != nil {
			c.dc.Close()
			return
		}
	}
	return c.save(path)
}

// PlotBouzidiDirs writes one image per moving direction into dir, named
// bouzidi_q<k>.png, and returns the paths written
func PlotBouzidiDirs(dir string, f *bouzidi.Field) (paths []string, err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	for _, d := range d2q9.Links() {
		c := newCanvas(f.Nx, f.Ny)
		for j := 0; j < f.Ny; j++ {
			for i := 0; i < f.Nx; i++ {
				col := sentinelColor
				if q, ok := f.Q(i, j, d); ok {
					col = lowColor.Lerp(highColor, q)
				}
				c.fillCell(i, j, col)
			}
		}
		path := filepath.Join(dir, fmt.Sprintf("bouzidi_q%d.png", d))
		if err = c.save(path); err != nil {
			return
		}
		paths = append(paths, path)
	}
	return
}

// HistogramCounts bins the defined fractions into nBins equal bins on [0, 1]
func HistogramCounts(f *bouzidi.Field, nBins int) (counts []float64) {
	if nBins < 1 {
		nBins = 1
	}
	var (
		qs       = f.Values()
		dividers = make([]float64, nBins+1)
	)
	floats.Span(dividers, 0, 1)
	// q = 1 belongs to the last bin
	dividers[nBins] = math.Nextafter(1, 2)
	if len(qs) == 0 {
		return make([]float64, nBins)
	}
	sort.Float64s(qs)
	return stat.Histogram(nil, dividers, qs, nil)
}

// PlotBouzidiHist draws a bar chart of the distribution of defined fractions
func PlotBouzidiHist(path string, f *bouzidi.Field, nBins int) (err error) {
	const (
		width, height = 640, 400
		margin        = 20.
	)
	var (
		counts = HistogramCounts(f, nBins)
		dc     = gg.NewContext(width, height)
		maxC   = floats.Max(counts)
		barW   = (width - 2*margin) / float64(len(counts))
	)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	if maxC > 0 {
		dc.SetColor(negColor.Color())
		for n, cnt := range counts {
			h := (height - 2*margin) * cnt / maxC
			dc.DrawRectangle(margin+float64(n)*barW, height-margin-h, barW*0.9, h)
		}
		if err = dc.Fill(); err != nil {
			return
		}
	}
	dc.SetColor(lineColor.Color())
	dc.SetLineWidth(1)
	dc.DrawLine(margin, height-margin, width-margin, height-margin)
	dc.DrawLine(margin, height-margin, margin, margin)
	if err = dc.Stroke(); err != nil {
		return
	}
	if err = dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	utils.Logger().Debug("wrote plot", "path", path, "links", len(f.Values()))
	return
}
