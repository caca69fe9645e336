package parser

import (
	"strings"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/token"
)

// parseSelectorGroup parses `selector (',' selector)*`.
func (p *Parser) parseSelectorGroup() ([]*ast.Selector, error) {
	var out []*ast.Selector
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
		t := p.lx.NextSignificant()
		if t.Kind != token.Comma {
			p.lx.Putback(t)
			break
		}
	}
	return out, nil
}

// parseSelector implements disambiguation rule 5: a whitespace run between
// sequences is the descendant combinator unless immediately followed by
// '{' or ','. parseSimpleSelectorSequence ends a sequence at any skipped
// whitespace or comment (it reads with NextSignificantWS); this function
// then takes an explicit combinator token if one follows, and otherwise
// treats the gap as a descendant combinator only when the next
// significant token can start a simple selector sequence.
func (p *Parser) parseSelector() (*ast.Selector, error) {
	first := p.lx.NextSignificant()
	pos := p.pos(first)
	p.lx.Putback(first)

	seq, err := p.parseSimpleSelectorSequence()
	if err != nil {
		return nil, err
	}
	sel := &ast.Selector{Sequences: []*ast.SimpleSelectorSequence{seq}, Position: pos}

	for {
		t := p.lx.NextSignificant()
		switch t.Kind {
		case token.Greater:
			sel.Combinators = append(sel.Combinators, ast.Child)
		case token.Plus:
			sel.Combinators = append(sel.Combinators, ast.AdjacentSibling)
		case token.Tilde:
			sel.Combinators = append(sel.Combinators, ast.GeneralSibling)
		case token.LBrace, token.Comma, token.EOF:
			p.lx.Putback(t)
			return sel, nil
		default:
			if startsSequence(t) {
				p.lx.Putback(t)
				sel.Combinators = append(sel.Combinators, ast.Descendant)
			} else {
				p.lx.Putback(t)
				return sel, nil
			}
		}
		next, err := p.parseSimpleSelectorSequence()
		if err != nil {
			return nil, err
		}
		sel.Sequences = append(sel.Sequences, next)
	}
}

func startsSequence(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.Star, token.Ampersand, token.Hash, token.Dot,
		token.LBracket, token.Colon, token.DoubleColon, token.NotFunction:
		return true
	}
	return false
}

func (p *Parser) parseSimpleSelectorSequence() (*ast.SimpleSelectorSequence, error) {
	first := p.lx.NextSignificant()
	pos := p.pos(first)
	seq := &ast.SimpleSelectorSequence{Position: pos}

	switch first.Kind {
	case token.Ident:
		seq.HeadKind = ast.HeadType
		seq.HeadName = first.Value
	case token.Star:
		seq.HeadKind = ast.HeadUniversal
	case token.Ampersand:
		if p.nested == 0 {
			return nil, p.errf(first)
		}
		seq.HeadKind = ast.HeadAncestor
	default:
		seq.HeadKind = ast.HeadNone
		p.lx.Putback(first)
	}

	for {
		t, hadWS := p.lx.NextSignificantWS()
		if hadWS {
			// whitespace ends the sequence; parseSelector decides whether
			// it is a descendant combinator.
			p.lx.Putback(t)
			return seq, nil
		}
		switch t.Kind {
		case token.Hash:
			seq.Tail = append(seq.Tail, &ast.IDSelector{Name: strings.TrimPrefix(t.Text, "#"), Position: p.pos(t)})
		case token.Dot:
			nt := p.lx.NextSignificant()
			if nt.Kind != token.Ident {
				return nil, p.errf(nt)
			}
			seq.Tail = append(seq.Tail, &ast.ClassSelector{Name: nt.Value, Position: p.pos(t)})
		case token.LBracket:
			attr, err := p.parseAttributeSelector(t)
			if err != nil {
				return nil, err
			}
			seq.Tail = append(seq.Tail, attr)
		case token.NotFunction:
			inner, err := p.parseSimpleSelectorSequence()
			if err != nil {
				return nil, err
			}
			rp := p.lx.NextSignificant()
			if rp.Kind != token.RParen {
				return nil, p.errf(rp)
			}
			seq.Tail = append(seq.Tail, &ast.NegationSelector{Argument: inner, Position: p.pos(t)})
		case token.Colon, token.DoubleColon:
			ps, err := p.parsePseudo(t)
			if err != nil {
				return nil, err
			}
			seq.Tail = append(seq.Tail, ps)
		default:
			p.lx.Putback(t)
			return seq, nil
		}
	}
}

func (p *Parser) parseAttributeSelector(lb token.Token) (*ast.AttributeSelector, error) {
	name := p.lx.NextSignificant()
	if name.Kind != token.Ident {
		return nil, p.errf(name)
	}
	attr := &ast.AttributeSelector{Name: name.Value, Op: ast.AttrExists, Position: p.pos(lb)}
	t := p.lx.NextSignificant()
	switch t.Kind {
	case token.RBracket:
		return attr, nil
	case token.Equals:
		attr.Op = ast.AttrEquals
	case token.Includes:
		attr.Op = ast.AttrIncludes
	case token.DashMatch:
		attr.Op = ast.AttrDashMatch
	case token.PrefixMatch:
		attr.Op = ast.AttrPrefixMatch
	case token.SuffixMatch:
		attr.Op = ast.AttrSuffixMatch
	case token.SubstrMatch:
		attr.Op = ast.AttrSubstringMatch
	default:
		return nil, p.errf(t)
	}
	val := p.lx.NextSignificant()
	if val.Kind != token.Ident && val.Kind != token.String {
		return nil, p.errf(val)
	}
	attr.Value = val.Value
	rb := p.lx.NextSignificant()
	if rb.Kind != token.RBracket {
		return nil, p.errf(rb)
	}
	return attr, nil
}

func (p *Parser) parsePseudo(colon token.Token) (ast.SelectorTail, error) {
	isDouble := colon.Kind == token.DoubleColon
	name := p.lx.NextSignificant()
	var nameStr string
	var args string
	switch name.Kind {
	case token.Ident:
		nameStr = name.Value
	case token.Function:
		nameStr = strings.TrimSuffix(name.Text, "(")
		var b strings.Builder
		depth := 1
		for depth > 0 {
			t := p.lx.Next()
			if t.Kind == token.EOF {
				return nil, p.errf(t)
			}
			if t.Kind == token.LParen {
				depth++
			}
			if t.Kind == token.RParen {
				depth--
				if depth == 0 {
					break
				}
			}
			b.WriteString(t.Text)
		}
		args = b.String()
	default:
		return nil, p.errf(name)
	}

	if isDouble || ast.LegacyPseudoElements[strings.ToLower(nameStr)] {
		return &ast.PseudoElementSelector{Name: nameStr, Position: p.pos(colon)}, nil
	}
	return &ast.PseudoClassSelector{Name: nameStr, Arguments: args, Position: p.pos(colon)}, nil
}
