package value

import (
	"fmt"

	"github.com/csspp/csspp/cssperr"
)

// Op enumerates the arithmetic operators the value algebra applies.
// FwdSlashOp and the separator operators are never passed here; the
// solver only folds AddOp/SubOp/MulOp/DivisionOp.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// Apply is the binary operator table: it is keyed on the pair of variant
// tags and restricted to the CSS-meaningful combinations; any other
// combination raises a *cssperr.TypeError.
func Apply(op Op, lhs, rhs Value) (Value, error) {
	switch l := lhs.(type) {
	case Number:
		switch r := rhs.(type) {
		case Number:
			return applyScalar(op, l.N, r.N, func(n float64) Value { return Number{N: n} })
		case Percentage:
			if op == Mul || op == Div {
				return nil, typeErr(op, lhs, rhs)
			}
			return applyScalar(op, l.N, r.N, func(n float64) Value { return Percentage{N: n} })
		case Dimension:
			if op != Mul {
				// only dimension ÷ number is meaningful; number ÷ dimension
				// has no representable unit.
				return nil, typeErr(op, lhs, rhs)
			}
			return applyDimensionScale(op, l.N, r)
		}
	case Percentage:
		switch r := rhs.(type) {
		case Percentage:
			if op == Mul || op == Div {
				return nil, typeErr(op, lhs, rhs)
			}
			return applyScalar(op, l.N, r.N, func(n float64) Value { return Percentage{N: n} })
		case Number:
			if op == Mul || op == Div {
				return nil, typeErr(op, lhs, rhs)
			}
			return applyScalar(op, l.N, r.N, func(n float64) Value { return Percentage{N: n} })
		}
	case Dimension:
		switch r := rhs.(type) {
		case Number:
			if op == Add || op == Sub {
				return nil, typeErr(op, lhs, rhs)
			}
			return applyDimensionScale(op, r.N, l)
		case Dimension:
			return applyDimensionDimension(op, l, r)
		}
	}
	return nil, typeErr(op, lhs, rhs)
}

func applyScalar(op Op, a, b float64, wrap func(float64) Value) (Value, error) {
	switch op {
	case Add:
		return wrap(a + b), nil
	case Sub:
		return wrap(a - b), nil
	case Mul:
		return wrap(a * b), nil
	case Div:
		return wrap(a / b), nil
	}
	return nil, &cssperr.TypeError{Op: op.String(), Detail: "unsupported operator"}
}

// applyDimensionScale scales a Dimension by a plain scalar (Number),
// commutative for Mul, order-sensitive for Div (only dimension ÷ number
// is meaningful: a number scales a dimension, it never shares its unit).
func applyDimensionScale(op Op, scalar float64, d Dimension) (Value, error) {
	switch op {
	case Mul:
		return Dimension{N: d.N * scalar, Unit: d.Unit}, nil
	case Div:
		return Dimension{N: d.N / scalar, Unit: d.Unit}, nil
	}
	return nil, &cssperr.TypeError{Op: op.String(), Detail: "number/dimension only support * and /"}
}

func applyDimensionDimension(op Op, l, r Dimension) (Value, error) {
	switch op {
	case Add, Sub:
		if !convertible(l.Unit, r.Unit) {
			return nil, &cssperr.TypeError{
				Op:     op.String(),
				Detail: fmt.Sprintf("incompatible units %q and %q", l.Unit, r.Unit),
			}
		}
		rc, ok := Convert(r, l.Unit)
		if !ok {
			return nil, &cssperr.TypeError{Op: op.String(), Detail: fmt.Sprintf("cannot convert %q to %q", r.Unit, l.Unit)}
		}
		if op == Add {
			return Dimension{N: l.N + rc.N, Unit: l.Unit}, nil
		}
		return Dimension{N: l.N - rc.N, Unit: l.Unit}, nil
	default:
		return nil, &cssperr.TypeError{Op: op.String(), Detail: "dimension * dimension and dimension / dimension are not defined"}
	}
}

func typeErr(op Op, lhs, rhs Value) error {
	return &cssperr.TypeError{
		Op:      op.String(),
		LHSKind: kindName(lhs),
		RHSKind: kindName(rhs),
	}
}

func kindName(v Value) string {
	switch v.(type) {
	case Number:
		return "Number"
	case Percentage:
		return "Percentage"
	case Dimension:
		return "Dimension"
	case Color:
		return "Color"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Equal reports dimension-comparison equality: two dimensions compare
// equal iff their canonical values in a shared unit set are equal;
// distinct unit sets always compare unequal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Dimension:
		bv, ok := b.(Dimension)
		if !ok {
			return false
		}
		if !convertible(av.Unit, bv.Unit) {
			return false
		}
		ab, _ := toBase(av.N, av.Unit)
		bb, _ := toBase(bv.N, bv.Unit)
		return ab == bb
	case Number:
		bv, ok := b.(Number)
		return ok && av.N == bv.N
	case Percentage:
		bv, ok := b.(Percentage)
		return ok && av.N == bv.N
	case Color:
		bv, ok := b.(Color)
		return ok && av.R == bv.R && av.G == bv.G && av.B == bv.B && av.A == bv.A
	}
	return false
}
