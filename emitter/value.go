package emitter

import (
	"strconv"
	"strings"

	"github.com/csspp/csspp/ast"
)

// leafPrecedence is higher than any binary operator's, so literals,
// function calls, and unary expressions never need defensive parens.
const leafPrecedence = 10

func precedenceOf(v ast.Value) int {
	switch n := v.(type) {
	case *ast.BinaryOp:
		return n.Op.Precedence()
	case *ast.NaryOp:
		return n.Op.Precedence()
	case *ast.UnaryOp:
		return ast.UnaryPrecedence
	}
	return leafPrecedence
}

// emitValue renders an expression tree. parentPrec is not consulted here:
// emitBinary/emitNary decide whether a child needs parenthesizing
// themselves, by comparing precedenceOf(child) with their own precedence.
func (e *Emitter) emitValue(v ast.Value, parentPrec int) string {
	switch n := v.(type) {
	case *ast.NumberLit:
		return formatFloat(n.N)
	case *ast.PercentageLit:
		return formatFloat(n.N) + "%"
	case *ast.DimensionLit:
		return formatFloat(n.N) + strings.ToLower(n.Unit)
	case *ast.StringLit:
		return quoteString(n.S)
	case *ast.IdentifierLit:
		return escapeIdent(n.Name)
	case *ast.UriLit:
		return "url(" + quoteString(n.URI) + ")"
	case *ast.HexColorLit:
		return e.emitHexColor(n)
	case *ast.VarRef:
		// Only reachable when the solver did not run; preserve source form.
		return "$" + n.Name
	case *ast.UnaryOp:
		sign := "+"
		if n.Negative {
			sign = "-"
		}
		return sign + e.emitValue(n.Operand, ast.UnaryPrecedence)
	case *ast.BinaryOp:
		return e.emitBinary(n)
	case *ast.NaryOp:
		return e.emitNary(n)
	case *ast.FunctionCall:
		return e.emitFunctionCall(n)
	case *ast.RgbColorLit:
		return e.emitFunctionCall(&ast.FunctionCall{Name: "rgb", Args: &ast.NaryOp{Op: ast.CommaOp, Operands: []ast.Value{n.R, n.G, n.B}}})
	case *ast.HslColorLit:
		return e.emitFunctionCall(&ast.FunctionCall{Name: "hsl", Args: &ast.NaryOp{Op: ast.CommaOp, Operands: []ast.Value{n.H, n.S, n.L}}})
	}
	return ""
}

func (e *Emitter) emitBinary(n *ast.BinaryOp) string {
	p := n.Op.Precedence()
	lhs := e.emitValue(n.LHS, p)
	if precedenceOf(n.LHS) < p {
		lhs = "(" + lhs + ")"
	}
	rhs := e.emitValue(n.RHS, p)
	if precedenceOf(n.RHS) <= p {
		rhs = "(" + rhs + ")"
	}
	if n.Op == ast.FwdSlashOp {
		return lhs + "/" + rhs
	}
	return lhs + " " + n.Op.String() + " " + rhs
}

func (e *Emitter) emitNary(n *ast.NaryOp) string {
	p := n.Op.Precedence()
	parts := make([]string, len(n.Operands))
	for i, op := range n.Operands {
		s := e.emitValue(op, p)
		if precedenceOf(op) < p {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	if n.Op == ast.CommaOp {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, " ")
}

func (e *Emitter) emitFunctionCall(n *ast.FunctionCall) string {
	var args string
	if n.Args != nil {
		args = e.emitValue(n.Args, 0)
	}
	return escapeIdent(n.Name) + "(" + args + ")"
}

// formatFloat prints an integer-valued float without a trailing ".0",
// matching the value package's own leaf formatting so folded and
// unfolded numbers render identically.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}
