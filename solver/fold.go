package solver

import (
	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/value"
)

// foldExpr evaluates an expression tree bottom-up: value leaves become
// their value-algebra form, unary/binary ops are computed via the value
// algebra and re-encoded as AST nodes, FwdSlashOp is never folded, and
// function calls dispatch through the registry by name and arity.
func (s *Solver) foldExpr(v ast.Value) (ast.Value, error) {
	switch n := v.(type) {
	case *ast.NumberLit, *ast.StringLit, *ast.IdentifierLit, *ast.UriLit:
		return v, nil

	case *ast.PercentageLit:
		return v, nil

	case *ast.DimensionLit:
		return v, nil

	case *ast.HexColorLit:
		return v, nil

	case *ast.VarRef:
		bound, ok := s.namespaces.current().lookup(n.Name)
		if !ok {
			return nil, &cssperr.VarNameError{Name: n.Name, Filename: n.Position.Filename, Line: n.Position.Line, Column: n.Position.Column}
		}
		return s.foldExpr(bound)

	case *ast.UnaryOp:
		operand, err := s.foldExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		val, ok := toValue(operand)
		if !ok {
			// operand didn't reduce to a value-algebra literal (e.g. an
			// identifier); keep the unary wrapper as-is.
			return &ast.UnaryOp{Negative: n.Negative, Operand: operand, Position: n.Position}, nil
		}
		if n.Negative {
			val = val.Negate()
		}
		return valueToAST(val, n.Position), nil

	case *ast.BinaryOp:
		return s.foldBinary(n)

	case *ast.NaryOp:
		operands := make([]ast.Value, len(n.Operands))
		for i, op := range n.Operands {
			folded, err := s.foldExpr(op)
			if err != nil {
				return nil, err
			}
			operands[i] = folded
		}
		return &ast.NaryOp{Op: n.Op, Operands: operands, Position: n.Position}, nil

	case *ast.FunctionCall:
		return s.foldFunctionCall(n)

	case *ast.RgbColorLit:
		return s.foldColorCtor("rgb", []ast.Value{n.R, n.G, n.B}, n.Position)

	case *ast.HslColorLit:
		return s.foldColorCtor("hsl", []ast.Value{n.H, n.S, n.L}, n.Position)
	}
	return v, nil
}

func (s *Solver) foldBinary(n *ast.BinaryOp) (ast.Value, error) {
	lhs, err := s.foldExpr(n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := s.foldExpr(n.RHS)
	if err != nil {
		return nil, err
	}

	if n.Op == ast.FwdSlashOp {
		// never folded: remains a separator in the output.
		return &ast.BinaryOp{Op: ast.FwdSlashOp, LHS: lhs, RHS: rhs, Position: n.Position}, nil
	}

	lv, lok := toValue(lhs)
	rv, rok := toValue(rhs)
	if !lok || !rok {
		return &ast.BinaryOp{Op: n.Op, LHS: lhs, RHS: rhs, Position: n.Position}, nil
	}

	op, ok := astOpToValueOp(n.Op)
	if !ok {
		return &ast.BinaryOp{Op: n.Op, LHS: lhs, RHS: rhs, Position: n.Position}, nil
	}

	result, err := value.Apply(op, lv, rv)
	if err != nil {
		if te, ok := err.(*cssperr.TypeError); ok {
			te.Filename, te.Line, te.Column = n.Position.Filename, n.Position.Line, n.Position.Column
			return nil, te
		}
		return nil, err
	}
	return valueToAST(result, n.Position), nil
}

func astOpToValueOp(op ast.BinOp) (value.Op, bool) {
	switch op {
	case ast.AddOp:
		return value.Add, true
	case ast.SubOp:
		return value.Sub, true
	case ast.MulOp:
		return value.Mul, true
	case ast.DivisionOp:
		return value.Div, true
	}
	return 0, false
}

func (s *Solver) foldFunctionCall(n *ast.FunctionCall) (ast.Value, error) {
	argList := flattenArgs(n.Args)
	folded := make([]ast.Value, len(argList))
	for i, a := range argList {
		v, err := s.foldExpr(a)
		if err != nil {
			return nil, err
		}
		folded[i] = v
	}

	fn, ok := s.registry.Lookup(n.Name, len(folded))
	if !ok {
		return nil, &cssperr.FunctionNotFound{Name: n.Name, Arity: len(folded), Filename: n.Position.Filename, Line: n.Position.Line, Column: n.Position.Column}
	}
	values := make([]value.Value, len(folded))
	for i, f := range folded {
		v, ok := toValue(f)
		if !ok {
			return nil, &cssperr.ValueError{Func: n.Name, Detail: "argument is not a value", Filename: n.Position.Filename, Line: n.Position.Line, Column: n.Position.Column}
		}
		values[i] = v
	}
	result, err := fn(values)
	if err != nil {
		if ve, ok := err.(*cssperr.ValueError); ok {
			ve.Filename, ve.Line, ve.Column = n.Position.Filename, n.Position.Line, n.Position.Column
		}
		return nil, err
	}
	return valueToAST(result, n.Position), nil
}

func (s *Solver) foldColorCtor(name string, args []ast.Value, pos ast.Position) (ast.Value, error) {
	return s.foldFunctionCall(&ast.FunctionCall{Name: name, Args: &ast.NaryOp{Op: ast.CommaOp, Operands: args}, Position: pos})
}

func flattenArgs(v ast.Value) []ast.Value {
	if v == nil {
		return nil
	}
	if n, ok := v.(*ast.NaryOp); ok && n.Op == ast.CommaOp {
		return n.Operands
	}
	return []ast.Value{v}
}

// toValue converts an already-folded AST leaf into its value-algebra
// counterpart, if it is one.
func toValue(v ast.Value) (value.Value, bool) {
	switch n := v.(type) {
	case *ast.NumberLit:
		return value.Number{N: n.N}, true
	case *ast.PercentageLit:
		return value.Percentage{N: n.N}, true
	case *ast.DimensionLit:
		return value.Dimension{N: n.N, Unit: n.Unit}, true
	case *ast.HexColorLit:
		return hexToColor(n.Hex), true
	}
	return nil, false
}

// valueToAST re-encodes a folded value-algebra result as an AST node,
// wrapping negative scalars in a unary-minus so the emitter never emits
// a bare negative literal.
func valueToAST(v value.Value, pos ast.Position) ast.Value {
	switch n := v.(type) {
	case value.Number:
		if n.N < 0 {
			return &ast.UnaryOp{Negative: true, Operand: &ast.NumberLit{N: -n.N, Position: pos}, Position: pos}
		}
		return &ast.NumberLit{N: n.N, Position: pos}
	case value.Percentage:
		if n.N < 0 {
			return &ast.UnaryOp{Negative: true, Operand: &ast.PercentageLit{N: -n.N, Position: pos}, Position: pos}
		}
		return &ast.PercentageLit{N: n.N, Position: pos}
	case value.Dimension:
		if n.N < 0 {
			return &ast.UnaryOp{Negative: true, Operand: &ast.DimensionLit{N: -n.N, Unit: n.Unit, Position: pos}, Position: pos}
		}
		return &ast.DimensionLit{N: n.N, Unit: n.Unit, Position: pos}
	case value.Color:
		return colorToHex(n, pos)
	}
	return nil
}

func hexToColor(hex string) value.Color {
	expand := hex
	if len(hex) == 3 {
		expand = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(expand) != 6 {
		return value.Color{Format: value.FormatHex}
	}
	r := hexByte(expand[0:2])
	g := hexByte(expand[2:4])
	b := hexByte(expand[4:6])
	return value.Color{R: r, G: g, B: b, A: 255, Format: value.FormatHex}
}

func hexByte(s string) int {
	n := 0
	for _, c := range s {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n += int(c-'A') + 10
		}
	}
	return n
}

func colorToHex(c value.Color, pos ast.Position) ast.Value {
	hex := toHexString(c.R) + toHexString(c.G) + toHexString(c.B)
	return &ast.HexColorLit{Hex: hex, Position: pos}
}

const hexDigits = "0123456789abcdef"

func toHexString(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return string([]byte{hexDigits[n/16], hexDigits[n%16]})
}
