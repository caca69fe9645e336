package solver

import (
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/value"
)

// Func is a built-in function implementation: given already-folded
// arguments, it returns the resulting value or an error. A configuration
// object passed into the solver rather than a global mutable map, the
// way titpetric/lessgo's functions.FuncMap is built but keyed here by
// (name, arity) instead of variadic strings, so the minimum rgb/hsl
// contract's arity-mismatch behavior (FunctionNotFound) is explicit.
type Func func(args []value.Value) (value.Value, error)

// Registry dispatches built-in function calls by name and arity. The
// zero Registry has a nil map, so Register panics on it; NewRegistry
// returns an empty one and NewDefaultRegistry one pre-populated with the
// built-ins. Callers can Register additional functions to plug in a
// user-supplied built-in function set.
type Registry struct {
	funcs map[string]map[int]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]map[int]Func)}
}

// NewDefaultRegistry returns a registry pre-populated with rgb/3, hsl/3,
// and the math and color-manipulation built-ins adapted from
// titpetric/lessgo's functions package, meant to be extended rather than
// built from nothing.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("rgb", 3, rgbFunc)
	r.Register("hsl", 3, hslFunc)
	registerMathFuncs(r)
	registerColorFuncs(r)
	return r
}

// Register adds fn under name at the given arity, replacing any existing
// entry for the same (name, arity) pair.
func (r *Registry) Register(name string, arity int, fn Func) {
	if r.funcs[name] == nil {
		r.funcs[name] = make(map[int]Func)
	}
	r.funcs[name][arity] = fn
}

// Lookup returns the function registered for name at the given arity.
func (r *Registry) Lookup(name string, arity int) (Func, bool) {
	byArity, ok := r.funcs[name]
	if !ok {
		return nil, false
	}
	fn, ok := byArity[arity]
	return fn, ok
}

func rgbFunc(args []value.Value) (value.Value, error) {
	chans := make([]int, 3)
	for i, a := range args {
		n, ok := channelValue(a)
		if !ok {
			return nil, &cssperr.ValueError{Func: "rgb", Detail: "arguments must be Number or Percentage"}
		}
		chans[i] = n
	}
	return value.Color{R: chans[0], G: chans[1], B: chans[2], A: 255, Format: value.FormatRGB}, nil
}

func channelValue(v value.Value) (int, bool) {
	switch n := v.(type) {
	case value.Number:
		return clampChannel(int(n.N)), true
	case value.Percentage:
		return clampChannel(int(n.N * 255 / 100)), true
	}
	return 0, false
}

func clampChannel(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func hslFunc(args []value.Value) (value.Value, error) {
	h, ok := args[0].(value.Number)
	if !ok {
		return nil, &cssperr.ValueError{Func: "hsl", Detail: "hue must be a Number"}
	}
	s, ok := args[1].(value.Percentage)
	if !ok {
		return nil, &cssperr.ValueError{Func: "hsl", Detail: "saturation must be a Percentage"}
	}
	l, ok := args[2].(value.Percentage)
	if !ok {
		return nil, &cssperr.ValueError{Func: "hsl", Detail: "lightness must be a Percentage"}
	}
	return value.ColorFromHSL(h.N, s.N/100, l.N/100, 255), nil
}
