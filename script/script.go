// Package script evaluates scene descriptions written in a small sandboxed
// Lisp. The value of the last expression must be a shape:
//
//	// a cylinder with a slot cut out of it
//	(difference
//	    (circle 0 0 25)
//	    (rotate (rect 0 0 40 6) (/ (pi) 4) 0 0))
//
// Builtins: circle, ellipse, rect, roundrect, cassini, polygon, rotate,
// union, intersect, difference and pi. Comments start with // or ;.
package script

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/notargets/lb2dgeom/shapes"
)

var (
	ErrNoShape = errors.New("scene does not evaluate to a shape")
	// EvalTimeout bounds a single evaluation
	EvalTimeout = 5 * time.Second
)

// EvalError is a parse or runtime error in a scene script
type EvalError struct {
	Line    int
	Message string
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

type result struct {
	shape shapes.Shape
	err   error
}

// Eval runs source in a fresh sandbox and returns the shape it builds
func Eval(source string) (s shapes.Shape, err error) {
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		s, err := eval(source)
		ch <- result{shape: s, err: err}
	}()
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		return res.shape, res.err
	case <-timer.C:
		return nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

func EvalFile(path string) (s shapes.Shape, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if s, err = Eval(string(data)); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

func eval(source string) (s shapes.Shape, err error) {
	source = normalizeComments(source)
	if strings.TrimSpace(source) == "" {
		return nil, ErrNoShape
	}
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env)

	if err = env.LoadString(source); err != nil {
		return nil, parseError(err)
	}
	var val zygo.Sexp
	if val, err = env.Run(); err != nil {
		return nil, parseError(err)
	}
	sh, ok := val.(*sexpShape)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoShape, val.SexpString(nil))
	}
	return sh.shape, nil
}

var (
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

func parseError(err error) *EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return &EvalError{Line: line, Message: strings.TrimSpace(m[2])}
		}
	}
	return &EvalError{Message: strings.TrimSpace(msg)}
}

// normalizeComments turns ; comments into the // form the interpreter
// reads, leaving string literals alone
func normalizeComments(source string) string {
	var (
		sb       strings.Builder
		inString bool
	)
	sb.Grow(len(source))
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case inString:
			if c == '\\' && i+1 < len(source) {
				sb.WriteByte(c)
				i++
				c = source[i]
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == ';' || (c == '/' && i+1 < len(source) && source[i+1] == '/'):
			for i < len(source) && (source[i] == ';' || source[i] == '/') {
				i++
			}
			sb.WriteString("//")
			for i < len(source) && source[i] != '\n' {
				sb.WriteByte(source[i])
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
