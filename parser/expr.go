package parser

import (
	"strings"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/token"
)

// parseMathExpr is the entry point used by vardef and parenthesized
// sub-expressions: math_expr forbids comma and whitespace-join, and '/'
// is always division inside it.
func (p *Parser) parseMathExpr() (ast.Value, error) {
	return p.parseAdditive(true)
}

// parseCommaExpr is the entry point used by declarations and import/
// function arguments: full comma_expr grammar with join and comma.
func (p *Parser) parseCommaExpr() (ast.Value, error) {
	var operands []ast.Value
	first, err := p.parseJoinExpr()
	if err != nil {
		return nil, err
	}
	operands = append(operands, first)
	for {
		t := p.lx.NextSignificant()
		if t.Kind != token.Comma {
			p.lx.Putback(t)
			break
		}
		next, err := p.parseJoinExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.NaryOp{Op: ast.CommaOp, Operands: operands}, nil
}

// parseJoinExpr collects whitespace-separated additive terms into a
// single NaryOp, e.g. "0 0 1px #000".
func (p *Parser) parseJoinExpr() (ast.Value, error) {
	var operands []ast.Value
	first, err := p.parseAdditive(false)
	if err != nil {
		return nil, err
	}
	operands = append(operands, first)
	for {
		t, hadWS := p.lx.NextSignificantWS()
		if !hadWS || !startsTerm(t) {
			p.lx.Putback(t)
			break
		}
		p.lx.Putback(t)
		next, err := p.parseAdditive(false)
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.NaryOp{Op: ast.JoinOp, Operands: operands}, nil
}

func startsTerm(t token.Token) bool {
	switch t.Kind {
	case token.Number, token.Percentage, token.Dimension, token.String, token.Ident,
		token.Hash, token.URI, token.Function, token.LParen, token.Plus, token.Minus:
		return true
	}
	return false
}

// parseAdditive handles left-associative '+'/'-' over multiplicative
// terms, implementing disambiguation rule 4 for the minus sign: a '-'
// immediately followed by whitespace continues the additive chain as a
// binary operator; a '-' glued to the next token (no whitespace) starts a
// new term instead, and is left for the join level to pick up.
func (p *Parser) parseAdditive(slashAlwaysDivision bool) (ast.Value, error) {
	lhs, err := p.parseMultiplicative(slashAlwaysDivision)
	if err != nil {
		return nil, err
	}
	for {
		t := p.lx.NextSignificant()
		if t.Kind != token.Plus && t.Kind != token.Minus {
			p.lx.Putback(t)
			return lhs, nil
		}
		nextTok, hadWS := p.lx.NextSignificantWS()
		p.lx.Putback(nextTok)
		if t.Kind == token.Minus && !hadWS {
			// glued to the next token: this '-' starts a new unary term
			// for the join level to pick up, not a binary continuation.
			p.lx.Putback(t)
			return lhs, nil
		}
		rhs, err := p.parseMultiplicative(slashAlwaysDivision)
		if err != nil {
			return nil, err
		}
		op := ast.AddOp
		if t.Kind == token.Minus {
			op = ast.SubOp
		}
		promoteFwdSlash(lhs)
		promoteFwdSlash(rhs)
		lhs = &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs, Position: lhs.Pos()}
	}
}

func (p *Parser) parseMultiplicative(slashAlwaysDivision bool) (ast.Value, error) {
	lhs, err := p.parseUnary(slashAlwaysDivision)
	if err != nil {
		return nil, err
	}
	for {
		t := p.lx.NextSignificant()
		switch t.Kind {
		case token.Star:
			rhs, err := p.parseUnary(slashAlwaysDivision)
			if err != nil {
				return nil, err
			}
			promoteFwdSlash(lhs)
			promoteFwdSlash(rhs)
			lhs = &ast.BinaryOp{Op: ast.MulOp, LHS: lhs, RHS: rhs, Position: lhs.Pos()}
		case token.Slash:
			rhs, err := p.parseUnary(slashAlwaysDivision)
			if err != nil {
				return nil, err
			}
			promoteFwdSlash(lhs)
			promoteFwdSlash(rhs)
			op := ast.FwdSlashOp
			if slashAlwaysDivision || isArithmeticShaped(lhs) || isArithmeticShaped(rhs) {
				op = ast.DivisionOp
			}
			lhs = &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs, Position: lhs.Pos()}
		default:
			p.lx.Putback(t)
			return lhs, nil
		}
	}
}

// promoteFwdSlash rewrites v's operator from FwdSlashOp to DivisionOp in
// place if v is a BinaryOp built from an ambiguous '/'. Once that node
// becomes an operand of another binary reduction it sits unambiguously
// in arithmetic context, so the slash it carries always meant division;
// mirrors the retroactive lhs/rhs rewrite the reduce step performs in
// cssypy/parsers/parsers.py.
func promoteFwdSlash(v ast.Value) {
	if b, ok := v.(*ast.BinaryOp); ok && b.Op == ast.FwdSlashOp {
		b.Op = ast.DivisionOp
	}
}

// isArithmeticShaped tests whether v is reachable through a chain of
// unary operators ending in a BinaryOp or VarRef, the shape that decides
// whether a following '/' means arithmetic division or a value separator.
func isArithmeticShaped(v ast.Value) bool {
	for {
		switch n := v.(type) {
		case *ast.BinaryOp:
			return true
		case *ast.VarRef:
			return true
		case *ast.UnaryOp:
			v = n.Operand
			continue
		default:
			return false
		}
	}
}

func (p *Parser) parseUnary(slashAlwaysDivision bool) (ast.Value, error) {
	t := p.lx.NextSignificant()
	if t.Kind == token.Plus || t.Kind == token.Minus {
		operand, err := p.parseUnary(slashAlwaysDivision)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Negative: t.Kind == token.Minus, Operand: operand, Position: p.pos(t)}, nil
	}
	p.lx.Putback(t)
	return p.parsePrimary(slashAlwaysDivision)
}

func (p *Parser) parsePrimary(slashAlwaysDivision bool) (ast.Value, error) {
	t := p.lx.NextSignificant()
	switch t.Kind {
	case token.Number:
		return &ast.NumberLit{N: t.Num, Position: p.pos(t)}, nil
	case token.Percentage:
		return &ast.PercentageLit{N: t.Num, Position: p.pos(t)}, nil
	case token.Dimension:
		return &ast.DimensionLit{N: t.Num, Unit: t.Unit, Position: p.pos(t)}, nil
	case token.String:
		return &ast.StringLit{S: t.Value, Position: p.pos(t)}, nil
	case token.URI:
		return &ast.UriLit{URI: t.Value, Position: p.pos(t)}, nil
	case token.Hash:
		return &ast.HexColorLit{Hex: strings.ToLower(strings.TrimPrefix(t.Text, "#")), Position: p.pos(t)}, nil
	case token.LParen:
		inner, err := p.parseMathExpr()
		if err != nil {
			return nil, err
		}
		rp := p.lx.NextSignificant()
		if rp.Kind != token.RParen {
			return nil, p.errf(rp)
		}
		return inner, nil
	case token.Function:
		return p.parseFunctionCall(t)
	case token.Ident:
		if strings.HasPrefix(t.Value, "$") {
			return &ast.VarRef{Name: strings.TrimPrefix(t.Value, "$"), Position: p.pos(t)}, nil
		}
		return &ast.IdentifierLit{Name: t.Value, Position: p.pos(t)}, nil
	}
	return nil, p.errf(t)
}

func (p *Parser) parseFunctionCall(t token.Token) (ast.Value, error) {
	name := strings.TrimSuffix(t.Text, "(")
	rp := p.lx.NextSignificant()
	if rp.Kind == token.RParen {
		fn := &ast.FunctionCall{Name: name, Position: p.pos(t)}
		return p.wrapKnownColorFn(name, fn)
	}
	p.lx.Putback(rp)
	args, err := p.parseCommaExpr()
	if err != nil {
		return nil, err
	}
	closing := p.lx.NextSignificant()
	if closing.Kind != token.RParen {
		return nil, p.errf(closing)
	}
	fn := &ast.FunctionCall{Name: name, Args: args, Position: p.pos(t)}
	return p.wrapKnownColorFn(name, fn)
}

// wrapKnownColorFn tags rgb()/hsl() calls as their dedicated AST node so
// solve-disabled round-trips and the emitter can recognize them without
// re-parsing the argument list; the solver still dispatches them through
// the same function-registry path as any other FunctionCall.
func (p *Parser) wrapKnownColorFn(name string, fn *ast.FunctionCall) (ast.Value, error) {
	lower := strings.ToLower(name)
	args := flattenArgs(fn.Args)
	switch lower {
	case "rgb", "rgba":
		if len(args) >= 3 {
			return &ast.RgbColorLit{R: args[0], G: args[1], B: args[2], Position: fn.Position}, nil
		}
	case "hsl", "hsla":
		if len(args) >= 3 {
			return &ast.HslColorLit{H: args[0], S: args[1], L: args[2], Position: fn.Position}, nil
		}
	}
	return fn, nil
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
