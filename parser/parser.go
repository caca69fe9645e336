// Package parser implements the recursive-descent grammar of the csspp
// dialect over a lexer.Lexer token stream, grounded on the speculative-parse /
// token-stack shape of titpetric/lessgo's parser.Parser and parser.Stack,
// generalized to the disambiguation rules the CSS superset needs:
// declaration-vs-ruleset, nested '&', FwdSlashOp-vs-DivisionOp, unary-vs-
// binary minus, and the descendant-combinator whitespace rule.
package parser

import (
	"strings"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/lexer"
	"github.com/csspp/csspp/token"
)

// Parser turns a token stream into an *ast.Stylesheet.
type Parser struct {
	lx       *lexer.Lexer
	filename string
	nested   int // >0 while inside a RuleSet body; '&' is only legal then
}

// New constructs a Parser reading from lx.
func New(filename string, lx *lexer.Lexer) *Parser {
	return &Parser{lx: lx, filename: filename}
}

// ParseString is a convenience entry point used by tests and the importer.
func ParseString(filename, src string) (*ast.Stylesheet, error) {
	p := New(filename, lexer.New(filename, src))
	return p.ParseStylesheet()
}

func (p *Parser) pos(t token.Token) ast.Position {
	return ast.Position{Filename: p.filename, Line: t.Line, Column: t.Column}
}

func (p *Parser) errf(t token.Token) error {
	return &cssperr.SyntaxError{Filename: p.filename, Line: t.Line, Column: t.Column, Kind: t.Kind.String(), Text: t.Text}
}

// --- token-stack context: records consumed tokens, commit or restore ---

type mark struct {
	p        *Parser
	tokens   []token.Token
	resolved bool
}

// begin opens a speculative region: tokens consumed via m.take() within
// it are recorded so restore() can push them all back in order.
func (p *Parser) begin() *mark {
	return &mark{p: p}
}

func (m *mark) take() token.Token {
	t := m.p.lx.NextSignificant()
	m.tokens = append(m.tokens, t)
	return t
}

// commit accepts the speculative parse; consumed tokens stay consumed.
func (m *mark) commit() { m.resolved = true }

// restore pushes every recorded token back onto the lexer, LIFO, so the
// next read reproduces the same sequence.
func (m *mark) restore() {
	if m.resolved {
		return
	}
	for i := len(m.tokens) - 1; i >= 0; i-- {
		m.p.lx.Putback(m.tokens[i])
	}
}

// --- top level ---

// ParseStylesheet parses an entire top-level (or imported) file.
func (p *Parser) ParseStylesheet() (*ast.Stylesheet, error) {
	sheet := &ast.Stylesheet{}
	first := p.lx.NextSignificant()
	sheet.Position = p.pos(first)

	if first.Kind == token.AtCharset {
		p.lx.Putback(first)
		cs, err := p.parseCharset()
		if err != nil {
			return nil, err
		}
		sheet.Charset = cs
	} else {
		p.lx.Putback(first)
	}

	for {
		t := p.lx.NextSignificant()
		if t.Kind == token.AtImport {
			p.lx.Putback(t)
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			sheet.Imports = append(sheet.Imports, imp)
			continue
		}
		p.lx.Putback(t)
		break
	}

	for {
		t := p.lx.NextSignificant()
		if t.Kind == token.EOF {
			break
		}
		p.lx.Putback(t)
		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		sheet.Statements = append(sheet.Statements, stmt)
	}
	return sheet, nil
}

func (p *Parser) parseCharset() (*ast.Charset, error) {
	kw := p.lx.NextSignificant() // @charset
	str := p.lx.NextSignificant()
	if str.Kind != token.String {
		return nil, p.errf(str)
	}
	semi := p.lx.NextSignificant()
	if semi.Kind != token.Semicolon {
		return nil, p.errf(semi)
	}
	return &ast.Charset{Name: str.Value, Position: p.pos(kw)}, nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	kw := p.lx.NextSignificant() // @import
	var uri ast.Value
	t := p.lx.NextSignificant()
	switch t.Kind {
	case token.String:
		uri = &ast.StringLit{S: t.Value, Position: p.pos(t)}
	case token.URI:
		uri = &ast.UriLit{URI: t.Value, Position: p.pos(t)}
	default:
		return nil, p.errf(t)
	}
	semi := p.lx.NextSignificant()
	if semi.Kind != token.Semicolon {
		return nil, p.errf(semi)
	}
	return &ast.Import{URI: uri, Position: p.pos(kw)}, nil
}

// parseTopLevelStatement and parseInnerStatement share the same grammar
// (spec's ruleset/vardef/opaque_at_rule alternatives); nestedness only
// changes whether '&' and declarations are legal.
func (p *Parser) parseTopLevelStatement() (ast.Statement, error) {
	return p.parseStatement()
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	t := p.lx.NextSignificant()
	switch t.Kind {
	case token.AtMedia, token.AtPage, token.AtOther:
		p.lx.Putback(t)
		return p.parseAtRule()
	default:
		p.lx.Putback(t)
		return p.parseDeclOrRuleSetOrVarDef()
	}
}

func (p *Parser) parseAtRule() (*ast.AtRule, error) {
	kw := p.lx.NextSignificant()
	name := strings.TrimPrefix(kw.Text, "@")

	var params strings.Builder
	for {
		t := p.lx.Next()
		if t.Kind == token.LBrace || t.Kind == token.Semicolon || t.Kind == token.EOF {
			p.lx.Putback(t)
			break
		}
		params.WriteString(t.Text)
	}

	t := p.lx.NextSignificant()
	if t.Kind == token.Semicolon {
		return &ast.AtRule{Name: name, Parameters: strings.TrimSpace(params.String()), Position: p.pos(kw)}, nil
	}
	if t.Kind != token.LBrace {
		return nil, p.errf(t)
	}
	var block []ast.Statement
	p.nested++
	for {
		nt := p.lx.NextSignificant()
		if nt.Kind == token.RBrace {
			break
		}
		if nt.Kind == token.EOF {
			p.nested--
			return nil, p.errf(nt)
		}
		p.lx.Putback(nt)
		stmt, err := p.parseStatement()
		if err != nil {
			p.nested--
			return nil, err
		}
		block = append(block, stmt)
	}
	p.nested--
	return &ast.AtRule{Name: name, Parameters: strings.TrimSpace(params.String()), Block: block, Position: p.pos(kw)}, nil
}

// parseDeclOrRuleSetOrVarDef disambiguates: a VARNAME starts a vardef;
// an IDENT followed by ':' may start either a declaration or a ruleset's
// selector group. It speculatively parses a
// declaration; on failure it rewinds to the property token and parses a
// selector-led ruleset instead.
func (p *Parser) parseDeclOrRuleSetOrVarDef() (ast.Statement, error) {
	first := p.lx.NextSignificant()

	if isVarName(first) {
		p.lx.Putback(first)
		return p.parseVarDef()
	}

	if first.Kind == token.Ident {
		m := p.begin()
		colon := m.take()
		if colon.Kind == token.Colon {
			decl, ok, err := p.tryParseDeclarationBody(first)
			if err != nil {
				return nil, err
			}
			if ok {
				m.commit()
				return decl, nil
			}
		}
		m.restore()
	}

	p.lx.Putback(first)
	return p.parseRuleSet()
}

func isVarName(t token.Token) bool {
	return t.Kind == token.Ident && strings.HasPrefix(t.Value, "$")
}

func (p *Parser) parseVarDef() (*ast.VarDef, error) {
	name := p.lx.NextSignificant()
	colon := p.lx.NextSignificant()
	if colon.Kind != token.Colon {
		return nil, p.errf(colon)
	}
	expr, err := p.parseMathExpr()
	if err != nil {
		return nil, err
	}
	t := p.lx.NextSignificant()
	if t.Kind != token.Semicolon && t.Kind != token.EOF {
		return nil, p.errf(t)
	}
	return &ast.VarDef{Name: strings.TrimPrefix(name.Value, "$"), Expr: expr, Position: p.pos(name)}, nil
}

// tryParseDeclarationBody attempts the declaration continuation after
// "property :" has been consumed. It reports ok=false (not an error) when
// the continuation does not look like a declaration, so the caller can
// rewind and try a ruleset instead.
func (p *Parser) tryParseDeclarationBody(prop token.Token) (*ast.Declaration, bool, error) {
	expr, err := p.parseCommaExpr()
	if err != nil {
		return nil, false, nil
	}
	important := false
	t := p.lx.NextSignificant()
	if t.Kind == token.Bang {
		id := p.lx.NextSignificant()
		if id.Kind != token.Ident || !strings.EqualFold(id.Value, "important") {
			return nil, false, nil
		}
		important = true
		t = p.lx.NextSignificant()
	}
	if t.Kind != token.Semicolon && t.Kind != token.RBrace {
		return nil, false, nil
	}
	if t.Kind == token.RBrace {
		p.lx.Putback(t)
	}
	return &ast.Declaration{Property: prop.Value, Expr: expr, Important: important, Position: p.pos(prop)}, true, nil
}

// parseRuleSet parses a selector_group '{' ruleset_body '}'.
func (p *Parser) parseRuleSet() (*ast.RuleSet, error) {
	first := p.lx.NextSignificant()
	pos := p.pos(first)
	p.lx.Putback(first)

	selectors, err := p.parseSelectorGroup()
	if err != nil {
		return nil, err
	}
	lb := p.lx.NextSignificant()
	if lb.Kind != token.LBrace {
		return nil, p.errf(lb)
	}
	p.nested++
	var stmts []ast.Statement
	for {
		t := p.lx.NextSignificant()
		if t.Kind == token.RBrace {
			break
		}
		if t.Kind == token.EOF {
			p.nested--
			return nil, p.errf(t)
		}
		if t.Kind == token.Semicolon {
			continue
		}
		p.lx.Putback(t)
		stmt, err := p.parseInnerStatement()
		if err != nil {
			p.nested--
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.nested--
	return &ast.RuleSet{Selectors: selectors, Statements: stmts, Position: pos}, nil
}

func (p *Parser) parseInnerStatement() (ast.Statement, error) {
	t := p.lx.NextSignificant()
	p.lx.Putback(t)
	if t.Kind == token.AtMedia || t.Kind == token.AtPage || t.Kind == token.AtOther {
		return p.parseAtRule()
	}
	return p.parseDeclOrRuleSetOrVarDef()
}
