package script

import (
	"fmt"
	"math"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/notargets/lb2dgeom/shapes"
	"gonum.org/v1/gonum/spatial/r2"
)

// sexpShape carries a shapes.Shape between builtins
type sexpShape struct {
	shape shapes.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %T)", s.shape)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toShape(s zygo.Sexp) (shapes.Shape, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// numbers converts args to floats, requiring between min and max of them;
// missing optional values are zero
func numbers(name string, args []zygo.Sexp, min, max int) (vals []float64, err error) {
	if len(args) < min || len(args) > max {
		if min == max {
			return nil, fmt.Errorf("%s requires %d arguments, got %d", name, min, len(args))
		}
		return nil, fmt.Errorf("%s requires %d to %d arguments, got %d", name, min, max, len(args))
	}
	vals = make([]float64, max)
	for n, a := range args {
		if vals[n], err = toFloat64(a); err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, n+1, err)
		}
	}
	return
}

func wrap(s shapes.Shape, err error) (zygo.Sexp, error) {
	if err != nil {
		return zygo.SexpNull, err
	}
	return &sexpShape{shape: s}, nil
}

type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// primitive registers a shape constructor taking min to max numeric arguments
func primitive(min, max int, build func(v []float64) (shapes.Shape, error)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := numbers(name, args, min, max)
		if err != nil {
			return zygo.SexpNull, err
		}
		return wrap(build(v))
	}
}

func registerBuiltins(env *zygo.Zlisp) {
	// (circle x0 y0 r)
	env.AddFunction("circle", primitive(3, 3, func(v []float64) (shapes.Shape, error) {
		return shapes.NewCircle(v[0], v[1], v[2])
	}))
	// (ellipse x0 y0 a b [theta])
	env.AddFunction("ellipse", primitive(4, 5, func(v []float64) (shapes.Shape, error) {
		return shapes.NewEllipse(v[0], v[1], v[2], v[3], v[4])
	}))
	// (rect x0 y0 w h [theta])
	env.AddFunction("rect", primitive(4, 5, func(v []float64) (shapes.Shape, error) {
		return shapes.NewRectangle(v[0], v[1], v[2], v[3], v[4])
	}))
	// (roundrect x0 y0 w h rx ry [theta])
	env.AddFunction("roundrect", primitive(6, 7, func(v []float64) (shapes.Shape, error) {
		return shapes.NewRoundedRectangle(v[0], v[1], v[2], v[3], v[4], v[5], v[6])
	}))
	// (cassini x0 y0 a c [theta])
	env.AddFunction("cassini", primitive(4, 5, func(v []float64) (shapes.Shape, error) {
		return shapes.NewCassiniOval(v[0], v[1], v[2], v[3], v[4])
	}))
	// (polygon x1 y1 x2 y2 x3 y3 ...)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon requires x y pairs for at least 3 vertices, got %d numbers", len(args))
		}
		v, err := numbers(name, args, len(args), len(args))
		if err != nil {
			return zygo.SexpNull, err
		}
		vs := make([]r2.Vec, len(v)/2)
		for n := range vs {
			vs[n] = r2.Vec{X: v[2*n], Y: v[2*n+1]}
		}
		return wrap(shapes.NewPolygon(vs))
	})
	env.AddFunction("pi", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("pi takes no arguments")
		}
		return &zygo.SexpFloat{Val: math.Pi}, nil
	})

	// (rotate shape theta [px py])
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a shape and an angle")
		}
		s, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		v, err := numbers(name, args[1:], 1, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(args) == 3 {
			return zygo.SexpNull, fmt.Errorf("rotate: pivot needs both px and py")
		}
		return wrap(shapes.NewRotated(s, v[0], r2.Vec{X: v[1], Y: v[2]}))
	})

	// (union a b ...), (intersect a b ...)
	fold := func(all func(...shapes.Shape) (shapes.Shape, error)) builtin {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 shapes, got %d", name, len(args))
			}
			ss := make([]shapes.Shape, len(args))
			for n, a := range args {
				var err error
				if ss[n], err = toShape(a); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", name, n+1, err)
				}
			}
			return wrap(all(ss...))
		}
	}
	env.AddFunction("union", fold(shapes.UnionAll))
	env.AddFunction("intersect", fold(shapes.IntersectionAll))

	// (difference a b): a with b removed
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("difference requires 2 shapes, got %d", len(args))
		}
		a, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: argument 1: %w", err)
		}
		b, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: argument 2: %w", err)
		}
		return &sexpShape{shape: shapes.NewDifference(a, b)}, nil
	})
}
