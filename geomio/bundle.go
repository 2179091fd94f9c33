package geomio

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/lb2dgeom/bouzidi"
	"github.com/notargets/lb2dgeom/d2q9"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/raster"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

const FormatVersion = 1

var ErrFormat = errors.New("invalid geometry file")

// Meta is stored as meta.yaml at the top of a geometry bundle
type Meta struct {
	Format int        `json:"Format"`
	Title  string     `json:"Title"`
	Nx     int        `json:"Nx"`
	Ny     int        `json:"Ny"`
	Dx     float64    `json:"Dx"`
	Origin [2]float64 `json:"Origin"`
	Extras []string   `json:"Extras,omitempty"`
}

const (
	metaName  = "meta.yaml"
	phiName   = "phi.bin"
	solidName = "solid.bin"
)

func bouzidiName(dir d2q9.Direction) string { return fmt.Sprintf("bouzidi_%d.bin", dir) }

func extraName(name string) string { return "extra_" + name + ".bin" }

// Save writes geo to path as a zip bundle. Fields are stored with gonum's
// binary encoding, so values and NaN sentinels come back bit for bit.
func Save(path string, geo *Geometry) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return write(file, geo)
}

func write(w io.Writer, geo *Geometry) (err error) {
	if err = geo.check(); err != nil {
		return
	}
	var (
		zw   = zip.NewWriter(w)
		g    = geo.Grid
		meta = Meta{
			Format: FormatVersion,
			Title:  geo.Title,
			Nx:     g.Nx,
			Ny:     g.Ny,
			Dx:     g.Dx,
			Origin: [2]float64{g.Origin.X, g.Origin.Y},
		}
	)
	for name := range geo.Extras {
		meta.Extras = append(meta.Extras, name)
	}
	sort.Strings(meta.Extras)

	var data []byte
	if data, err = yaml.Marshal(meta); err != nil {
		return
	}
	if err = writeEntry(zw, metaName, data); err != nil {
		return
	}
	if err = writeDense(zw, phiName, geo.Phi); err != nil {
		return
	}
	if err = writeEntry(zw, solidName, geo.Solid.Bytes()); err != nil {
		return
	}
	for _, dir := range d2q9.Links() {
		if err = writeDense(zw, bouzidiName(dir), geo.Bouzidi.Slab(dir)); err != nil {
			return
		}
	}
	for _, name := range meta.Extras {
		if err = writeDense(zw, extraName(name), geo.Extras[name]); err != nil {
			return
		}
	}
	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte) (err error) {
	var w io.Writer
	if w, err = zw.Create(name); err != nil {
		return
	}
	_, err = w.Write(data)
	return
}

func writeDense(zw *zip.Writer, name string, m *mat.Dense) (err error) {
	var data []byte
	if data, err = m.MarshalBinary(); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return writeEntry(zw, name, data)
}

// Load reads a bundle written by Save
func Load(path string) (geo *Geometry, err error) {
	var zr *zip.ReadCloser
	if zr, err = zip.OpenReader(path); err != nil {
		return
	}
	defer zr.Close()
	return read(&zr.Reader)
}

func read(zr *zip.Reader) (geo *Geometry, err error) {
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	readEntry := func(name string) (data []byte, err error) {
		f, ok := entries[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrFormat, name)
		}
		var rc io.ReadCloser
		if rc, err = f.Open(); err != nil {
			return
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	readDense := func(name string, g *grids.Grid) (m *mat.Dense, err error) {
		var data []byte
		if data, err = readEntry(name); err != nil {
			return
		}
		m = &mat.Dense{}
		if err = m.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", ErrFormat, name, err)
		}
		if err = g.CheckField(name, m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return
	}

	var (
		data []byte
		meta Meta
		g    *grids.Grid
	)
	if data, err = readEntry(metaName); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if meta.Format != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d", ErrFormat, meta.Format, FormatVersion)
	}
	if g, err = grids.NewGrid(meta.Nx, meta.Ny, meta.Dx, r2.Vec{X: meta.Origin[0], Y: meta.Origin[1]}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	geo = &Geometry{Title: meta.Title, Grid: g}
	if geo.Phi, err = readDense(phiName, g); err != nil {
		return nil, err
	}
	if data, err = readEntry(solidName); err != nil {
		return nil, err
	}
	if geo.Solid, err = raster.MaskFromBytes(g.Nx, g.Ny, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if !geo.Solid.Equal(raster.MaskFromPhi(geo.Phi)) {
		return nil, fmt.Errorf("%w: %s disagrees with phi <= 0", ErrFormat, solidName)
	}
	slabs := make([]*mat.Dense, 0, d2q9.NumLinks)
	for _, dir := range d2q9.Links() {
		var slab *mat.Dense
		if slab, err = readDense(bouzidiName(dir), g); err != nil {
			return nil, err
		}
		slabs = append(slabs, slab)
	}
	if geo.Bouzidi, err = bouzidi.NewFieldFromSlabs(slabs); err != nil {
		return nil, err
	}
	if len(meta.Extras) != 0 {
		geo.Extras = make(map[string]*mat.Dense, len(meta.Extras))
	}
	for _, name := range meta.Extras {
		var e *mat.Dense
		if e, err = readDense(extraName(name), g); err != nil {
			return nil, err
		}
		geo.Extras[name] = e
	}
	return
}
