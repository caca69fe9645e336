package emitter

import (
	"strings"

	"github.com/csspp/csspp/ast"
)

func emitSelector(sel *ast.Selector) string {
	var b strings.Builder
	for i, seq := range sel.Sequences {
		if i > 0 {
			c := sel.Combinators[i-1]
			if c == ast.Descendant {
				b.WriteString(" ")
			} else {
				b.WriteString(" " + c.String() + " ")
			}
		}
		b.WriteString(emitSequence(seq))
	}
	return b.String()
}

func emitSequence(seq *ast.SimpleSelectorSequence) string {
	var b strings.Builder
	switch seq.HeadKind {
	case ast.HeadType:
		b.WriteString(escapeIdent(seq.HeadName))
	case ast.HeadUniversal:
		b.WriteString("*")
	case ast.HeadAncestor:
		b.WriteString("&")
	}
	for _, t := range seq.Tail {
		b.WriteString(emitTail(t))
	}
	return b.String()
}

func emitTail(t ast.SelectorTail) string {
	switch n := t.(type) {
	case *ast.IDSelector:
		return "#" + escapeIdent(n.Name)
	case *ast.ClassSelector:
		return "." + escapeIdent(n.Name)
	case *ast.AttributeSelector:
		return emitAttr(n)
	case *ast.PseudoClassSelector:
		return emitPseudo(":", n.Name, n.Arguments)
	case *ast.PseudoElementSelector:
		if ast.LegacyPseudoElements[strings.ToLower(n.Name)] {
			return emitPseudo(":", n.Name, "")
		}
		return emitPseudo("::", n.Name, "")
	case *ast.NegationSelector:
		return ":not(" + emitSequence(n.Argument) + ")"
	}
	return ""
}

func emitPseudo(prefix, name, args string) string {
	if args == "" {
		return prefix + escapeIdent(name)
	}
	return prefix + escapeIdent(name) + "(" + args + ")"
}

func emitAttr(a *ast.AttributeSelector) string {
	name := escapeIdent(a.Name)
	switch a.Op {
	case ast.AttrExists:
		return "[" + name + "]"
	case ast.AttrEquals:
		return "[" + name + "=" + quoteString(a.Value) + "]"
	case ast.AttrIncludes:
		return "[" + name + "~=" + quoteString(a.Value) + "]"
	case ast.AttrDashMatch:
		return "[" + name + "|=" + quoteString(a.Value) + "]"
	case ast.AttrPrefixMatch:
		return "[" + name + "^=" + quoteString(a.Value) + "]"
	case ast.AttrSuffixMatch:
		return "[" + name + "$=" + quoteString(a.Value) + "]"
	case ast.AttrSubstringMatch:
		return "[" + name + "*=" + quoteString(a.Value) + "]"
	}
	return "[" + name + "]"
}
