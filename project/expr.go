package project

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/gogpu/rosette"
)

// ErrExpr is returned for an expression that does not compile or fails
// while evaluated.
var ErrExpr = errors.New("project: invalid expression")

// exprPrefix marks a string property as an expression.
const exprPrefix = "="

// exprImports are the packages expressions may use.
const exprImports = `import (
	"fmt"
	"math"
)`

// propVars are the variables in scope of a property expression.
var propVars = []string{
	"time",
	"index", "offset", "angle", "count",
	"row", "rowOffset", "rowCount",
	"col", "colOffset", "colCount",
	"parentIndex", "parentOffset", "parentAngle", "parentCount",
}

// ghostVars are the variables in scope of a ghost skip expression.
var ghostVars = []string{"ghost", "ghosts"}

// IsExpr reports whether a property value is an expression.
func IsExpr(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, exprPrefix)
}

// exprFunc is a compiled expression. Its argument holds the variables.
type exprFunc func(vars map[string]float64) any

// evaluator compiles expressions into one yaegi interpreter. Compiled
// functions share the interpreter and must not run concurrently.
type evaluator struct {
	in *interp.Interpreter
	n  int
}

func newEvaluator() (*evaluator, error) {
	in := interp.New(interp.Options{})
	if err := in.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExpr, err)
	}
	if _, err := in.Eval(exprImports); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExpr, err)
	}
	return &evaluator{in: in}, nil
}

// compile wraps src, a Go expression over vars, into a function.
func (e *evaluator) compile(src string, vars []string) (exprFunc, error) {
	src = strings.TrimSpace(strings.TrimPrefix(src, exprPrefix))
	if src == "" {
		return nil, fmt.Errorf("%w: empty", ErrExpr)
	}
	e.n++
	name := fmt.Sprintf("expr%d", e.n)

	var b strings.Builder
	fmt.Fprintf(&b, "func %s(vars map[string]float64) any {\n", name)
	for _, v := range vars {
		fmt.Fprintf(&b, "\t%s := vars[%q]\n\t_ = %s\n", v, v, v)
	}
	fmt.Fprintf(&b, "\treturn %s\n}", src)

	if _, err := e.in.Eval(b.String()); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrExpr, src, err)
	}
	v, err := e.in.Eval(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrExpr, src, err)
	}
	fn, ok := v.Interface().(func(map[string]float64) any)
	if !ok {
		return nil, fmt.Errorf("%w: %q compiled to %s", ErrExpr, src, v.Type())
	}
	return exprFunc(fn), nil
}

// call runs f, turning a panic of the interpreted code into an error.
func (f exprFunc) call(vars map[string]float64) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExpr, r)
		}
	}()
	return f(vars), nil
}

// prop turns a compiled property expression into a rosette property.
func (f exprFunc) prop(src string) rosette.Prop {
	return rosette.Computed(func(a *rosette.PropArgs) (rosette.Value, error) {
		out, err := f.call(propEnv(a))
		if err != nil {
			return rosette.Value{}, fmt.Errorf("%q: %w", src, err)
		}
		v, err := rosette.ValueOf(out)
		if err != nil {
			return rosette.Value{}, fmt.Errorf("%w: %q: %w", ErrExpr, src, err)
		}
		return v, nil
	})
}

// propEnv exposes a generation context to an expression. Parent
// variables are 0 outside of nested generation.
func propEnv(a *rosette.PropArgs) map[string]float64 {
	env := map[string]float64{"time": a.Time}
	if r := a.Repetition; r != nil {
		env["index"] = float64(r.Index)
		env["offset"] = float64(r.Offset)
		env["angle"] = float64(r.Angle)
		env["count"] = float64(r.Count)
		env["row"] = float64(r.Row.Index)
		env["rowOffset"] = float64(r.Row.Offset)
		env["rowCount"] = float64(r.Row.Count)
		env["col"] = float64(r.Col.Index)
		env["colOffset"] = float64(r.Col.Offset)
		env["colCount"] = float64(r.Col.Count)
	}
	if a.Parent != nil && a.Parent.Repetition != nil {
		r := a.Parent.Repetition
		env["parentIndex"] = float64(r.Index)
		env["parentOffset"] = float64(r.Offset)
		env["parentAngle"] = float64(r.Angle)
		env["parentCount"] = float64(r.Count)
	}
	return env
}

// ghostSkip turns a compiled ghost expression into a recorder skip
// function. A failing or non-numeric result falls back to fallback.
func (f exprFunc) ghostSkip(src string, ghosts int, fallback func(int) float64) func(int) float64 {
	return func(ghost int) float64 {
		out, err := f.call(map[string]float64{"ghost": float64(ghost), "ghosts": float64(ghosts)})
		var v rosette.Value
		if err == nil {
			v, err = rosette.ValueOf(out)
		}
		if err == nil && !(v.IsNumber() && v.IsDefined()) {
			err = fmt.Errorf("%w: %v is not a number", ErrExpr, out)
		}
		if err != nil {
			rosette.Logger().Warn("project: ghost skip ignored",
				slog.String("expr", src), slog.Int("ghost", ghost), slog.Any("error", err))
			return fallback(ghost)
		}
		return float64(v.Float())
	}
}
