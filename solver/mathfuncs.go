package solver

import (
	"math"

	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/value"
)

// Numeric math built-ins, adapted from functions.Ceil/Floor/Round/Abs/Sqrt
// to operate on typed value.Value instead of string-formatted CSS text:
// the unit (or percentage-ness) of the argument carries through to the
// result instead of being re-parsed out of a rendered string.

func registerMathFuncs(r *Registry) {
	r.Register("ceil", 1, unaryMathFunc("ceil", math.Ceil))
	r.Register("floor", 1, unaryMathFunc("floor", math.Floor))
	r.Register("round", 1, unaryMathFunc("round", math.Round))
	r.Register("abs", 1, unaryMathFunc("abs", math.Abs))
	r.Register("sqrt", 1, unaryMathFunc("sqrt", math.Sqrt))
	r.Register("sin", 1, unaryMathFunc("sin", math.Sin))
	r.Register("cos", 1, unaryMathFunc("cos", math.Cos))
	r.Register("tan", 1, unaryMathFunc("tan", math.Tan))
	r.Register("pow", 2, powFunc)
	r.Register("min", 2, minMaxFunc("min", math.Min))
	r.Register("max", 2, minMaxFunc("max", math.Max))
	r.Register("percentage", 1, percentageFunc)
}

// unaryMathFunc lifts a float64 -> float64 function so it applies to a
// Number or Dimension while preserving the Dimension's unit, or to a
// Percentage while preserving its percentage-ness.
func unaryMathFunc(name string, f func(float64) float64) Func {
	return func(args []value.Value) (value.Value, error) {
		switch n := args[0].(type) {
		case value.Number:
			return value.Number{N: f(n.N)}, nil
		case value.Percentage:
			return value.Percentage{N: f(n.N)}, nil
		case value.Dimension:
			return value.Dimension{N: f(n.N), Unit: n.Unit}, nil
		}
		return nil, &cssperr.ValueError{Func: name, Detail: "argument must be numeric"}
	}
}

func powFunc(args []value.Value) (value.Value, error) {
	base, ok := numericN(args[0])
	if !ok {
		return nil, &cssperr.ValueError{Func: "pow", Detail: "base must be numeric"}
	}
	exp, ok := numericN(args[1])
	if !ok {
		return nil, &cssperr.ValueError{Func: "pow", Detail: "exponent must be numeric"}
	}
	return value.Number{N: math.Pow(base, exp)}, nil
}

func minMaxFunc(name string, pick func(a, b float64) float64) Func {
	return func(args []value.Value) (value.Value, error) {
		a, ok := numericN(args[0])
		if !ok {
			return nil, &cssperr.ValueError{Func: name, Detail: "arguments must be numeric"}
		}
		b, ok := numericN(args[1])
		if !ok {
			return nil, &cssperr.ValueError{Func: name, Detail: "arguments must be numeric"}
		}
		result := pick(a, b)
		if result == a {
			return args[0], nil
		}
		return args[1], nil
	}
}

func percentageFunc(args []value.Value) (value.Value, error) {
	n, ok := numericN(args[0])
	if !ok {
		return nil, &cssperr.ValueError{Func: "percentage", Detail: "argument must be numeric"}
	}
	return value.Percentage{N: n * 100}, nil
}

func numericN(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Number:
		return n.N, true
	case value.Percentage:
		return n.N, true
	case value.Dimension:
		return n.N, true
	}
	return 0, false
}
