package InputParameters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/lb2dgeom/grids"
	"github.com/notargets/lb2dgeom/shapes"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrInvalidCase = errors.New("invalid case")

type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeCircle
	ShapeEllipse
	ShapeRectangle
	ShapeRoundedRectangle
	ShapeCassini
	ShapeUnion
	ShapeIntersection
	ShapeDifference
	ShapeRotate
	ShapePolygon
)

var ShapeNameMap = map[string]ShapeKind{
	"circle":            ShapeCircle,
	"ellipse":           ShapeEllipse,
	"rect":              ShapeRectangle,
	"rectangle":         ShapeRectangle,
	"roundrect":         ShapeRoundedRectangle,
	"rounded_rectangle": ShapeRoundedRectangle,
	"cassini":           ShapeCassini,
	"cassini_oval":      ShapeCassini,
	"union":             ShapeUnion,
	"intersect":         ShapeIntersection,
	"intersection":      ShapeIntersection,
	"difference":        ShapeDifference,
	"rotate":            ShapeRotate,
	"polygon":           ShapePolygon,
}

// GridParameters describe the sampling grid; Origin is its lower-left corner
type GridParameters struct {
	Nx     int        `json:"Nx"`
	Ny     int        `json:"Ny"`
	Dx     float64    `json:"Dx"`
	Origin [2]float64 `json:"Origin"`
}

// ShapeParameters is one node of a shape tree. Primitives read the fields
// they need:
//
//	circle:     Center, Radius
//	ellipse:    Center, Radii (a, b), Theta
//	rect:       Center, Size (w, h), Theta
//	roundrect:  Center, Size, Radii (rx, ry), Theta
//	cassini:    Center, A, C, Theta
//	polygon:    Vertices, at least 3 (x, y) pairs
//
// union and intersect combine two or more Shapes, difference removes the
// second of its two Shapes from the first, and rotate turns its single Shape
// by Theta about Pivot.
type ShapeParameters struct {
	Type     string            `json:"Type"`
	Center   [2]float64        `json:"Center,omitempty"`
	Radius   float64           `json:"Radius,omitempty"`
	Radii    [2]float64        `json:"Radii,omitempty"`
	Size     [2]float64        `json:"Size,omitempty"`
	A        float64           `json:"A,omitempty"`
	C        float64           `json:"C,omitempty"`
	Theta    float64           `json:"Theta,omitempty"`
	Pivot    [2]float64        `json:"Pivot,omitempty"`
	Vertices [][2]float64      `json:"Vertices,omitempty"`
	Shapes   []ShapeParameters `json:"Shapes,omitempty"`
}

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title string           `json:"Title"`
	Grid  GridParameters   `json:"Grid"`
	Shape *ShapeParameters `json:"Shape,omitempty"`
	// Script is a scene file used in place of Shape, relative to the case file
	Script string `json:"Script,omitempty"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%d x %d]\t\t= Grid Cells\n", cp.Grid.Nx, cp.Grid.Ny)
	fmt.Printf("%8.5f\t\t= Dx\n", cp.Grid.Dx)
	fmt.Printf("(%g, %g)\t= Origin\n", cp.Grid.Origin[0], cp.Grid.Origin[1])
	if cp.Script != "" {
		fmt.Printf("[%s]\t= Script\n", cp.Script)
	}
	if cp.Shape != nil {
		cp.Shape.print(0)
	}
}

func (sp *ShapeParameters) print(depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%sShape[%s]", indent, sp.Type)
	switch ShapeNameMap[strings.ToLower(sp.Type)] {
	case ShapeCircle:
		fmt.Printf(" center=%v radius=%g", sp.Center, sp.Radius)
	case ShapeEllipse:
		fmt.Printf(" center=%v radii=%v theta=%g", sp.Center, sp.Radii, sp.Theta)
	case ShapeRectangle:
		fmt.Printf(" center=%v size=%v theta=%g", sp.Center, sp.Size, sp.Theta)
	case ShapeRoundedRectangle:
		fmt.Printf(" center=%v size=%v radii=%v theta=%g", sp.Center, sp.Size, sp.Radii, sp.Theta)
	case ShapeCassini:
		fmt.Printf(" center=%v a=%g c=%g theta=%g", sp.Center, sp.A, sp.C, sp.Theta)
	case ShapeRotate:
		fmt.Printf(" theta=%g pivot=%v", sp.Theta, sp.Pivot)
	case ShapePolygon:
		fmt.Printf(" vertices=%v", sp.Vertices)
	}
	fmt.Println()
	for i := range sp.Shapes {
		sp.Shapes[i].print(depth + 1)
	}
}

// BuildGrid validates the grid section
func (cp *CaseParameters) BuildGrid() (g *grids.Grid, err error) {
	gp := cp.Grid
	return grids.NewGrid(gp.Nx, gp.Ny, gp.Dx, r2.Vec{X: gp.Origin[0], Y: gp.Origin[1]})
}

// Build constructs the grid and the shape tree. A case that names a Script
// has no shape here; the caller evaluates the script instead.
func (cp *CaseParameters) Build() (g *grids.Grid, s shapes.Shape, err error) {
	if g, err = cp.BuildGrid(); err != nil {
		return
	}
	if cp.Shape == nil {
		if cp.Script == "" {
			err = fmt.Errorf("%w: neither Shape nor Script is set", ErrInvalidCase)
		}
		return
	}
	if cp.Script != "" {
		err = fmt.Errorf("%w: Shape and Script are both set", ErrInvalidCase)
		return
	}
	s, err = cp.Shape.Build()
	return
}

// Build constructs the shape described by this node and its children
func (sp *ShapeParameters) Build() (s shapes.Shape, err error) {
	kind, ok := ShapeNameMap[strings.ToLower(strings.TrimSpace(sp.Type))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape type %q, expected one of %s",
			ErrInvalidCase, sp.Type, strings.Join(shapeNames(), ", "))
	}
	var (
		x0, y0   = sp.Center[0], sp.Center[1]
		children []shapes.Shape
	)
	switch kind {
	case ShapeUnion, ShapeIntersection, ShapeDifference, ShapeRotate:
		if children, err = sp.buildChildren(); err != nil {
			return
		}
	default:
		if len(sp.Shapes) != 0 {
			return nil, fmt.Errorf("%w: %s does not take child Shapes", ErrInvalidCase, sp.Type)
		}
	}
	switch kind {
	case ShapeCircle:
		return checked(shapes.NewCircle(x0, y0, sp.Radius))
	case ShapeEllipse:
		return checked(shapes.NewEllipse(x0, y0, sp.Radii[0], sp.Radii[1], sp.Theta))
	case ShapeRectangle:
		return checked(shapes.NewRectangle(x0, y0, sp.Size[0], sp.Size[1], sp.Theta))
	case ShapeRoundedRectangle:
		return checked(shapes.NewRoundedRectangle(x0, y0, sp.Size[0], sp.Size[1], sp.Radii[0], sp.Radii[1], sp.Theta))
	case ShapeCassini:
		return checked(shapes.NewCassiniOval(x0, y0, sp.A, sp.C, sp.Theta))
	case ShapePolygon:
		vs := make([]r2.Vec, len(sp.Vertices))
		for n, v := range sp.Vertices {
			vs[n] = r2.Vec{X: v[0], Y: v[1]}
		}
		return checked(shapes.NewPolygon(vs))
	case ShapeUnion:
		return shapes.UnionAll(children...)
	case ShapeIntersection:
		return shapes.IntersectionAll(children...)
	case ShapeDifference:
		if len(children) != 2 {
			return nil, fmt.Errorf("%w: difference needs 2 Shapes, got %d", ErrInvalidCase, len(children))
		}
		return shapes.NewDifference(children[0], children[1]), nil
	case ShapeRotate:
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: rotate needs 1 Shape, got %d", ErrInvalidCase, len(children))
		}
		return checked(shapes.NewRotated(children[0], sp.Theta, r2.Vec{X: sp.Pivot[0], Y: sp.Pivot[1]}))
	}
	return nil, fmt.Errorf("%w: unhandled shape type %q", ErrInvalidCase, sp.Type)
}

// checked drops the typed nil a failed constructor returns
func checked(s shapes.Shape, err error) (shapes.Shape, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (sp *ShapeParameters) buildChildren() (children []shapes.Shape, err error) {
	children = make([]shapes.Shape, len(sp.Shapes))
	for i := range sp.Shapes {
		if children[i], err = sp.Shapes[i].Build(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", sp.Type, i, err)
		}
	}
	return
}

func shapeNames() (names []string) {
	for name := range ShapeNameMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
