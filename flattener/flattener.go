// Package flattener rewrites nested rulesets into a flat sequence,
// composing ancestor selectors including '&'. The cartesian
// chain-expansion algorithm renders nested rules through an explicit
// flatten pass rather than inline recursion; the selector-joining logic
// it implements is grounded on the descendant-combinator joining that
// used to live in titpetric/lessgo's renderer before nesting was
// rendered inline.
package flattener

import (
	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
)

// chain is the selector group of one flattened ruleset (already composed
// with its ancestors by composeCartesian) plus its leaf declarations.
type chain struct {
	selectors []*ast.Selector
	decls     []ast.Statement
}

// Flatten rewrites sheet.Statements so that no RuleSet has a RuleSet or
// VarDef child. Precondition: the solver has already run (no VarDef
// remains); a leftover VarDef is a programming error and raises
// *cssperr.RuntimeError.
func Flatten(sheet *ast.Stylesheet) error {
	out, err := flattenStatements(sheet.Statements)
	if err != nil {
		return err
	}
	sheet.Statements = out
	return nil
}

func flattenStatements(stmts []ast.Statement) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.RuleSet:
			chains, err := flattenRuleSet(n)
			if err != nil {
				return nil, err
			}
			for _, c := range chains {
				out = append(out, &ast.RuleSet{Selectors: c.selectors, Statements: c.decls, Position: n.Position})
			}
		case *ast.VarDef:
			return nil, &cssperr.RuntimeError{Detail: "VarDef present at flatten time: solver pass did not run or ran out of order"}
		case *ast.ImportedStylesheet:
			inner, err := flattenStatements(n.Statements)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		case *ast.AtRule:
			inner, err := flattenStatements(n.Block)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.AtRule{Name: n.Name, Parameters: n.Parameters, Block: inner, Position: n.Position})
		default:
			out = append(out, stmt)
		}
	}
	return out, nil
}

// flattenRuleSet splits a ruleset's children into nested rulesets and
// non-ruleset statements, emits the ruleset's own selectors and
// declarations first, then the Cartesian-expanded, selector-composed
// chains of each nested child, in source order.
func flattenRuleSet(r *ast.RuleSet) ([]*chain, error) {
	var decls []ast.Statement
	var nested []*ast.RuleSet
	for _, stmt := range r.Statements {
		switch n := stmt.(type) {
		case *ast.RuleSet:
			nested = append(nested, n)
		case *ast.VarDef:
			return nil, &cssperr.RuntimeError{Detail: "VarDef present at flatten time: solver pass did not run or ran out of order"}
		default:
			decls = append(decls, stmt)
		}
	}

	result := []*chain{{selectors: r.Selectors, decls: decls}}

	for _, child := range nested {
		childChains, err := flattenRuleSet(child)
		if err != nil {
			return nil, err
		}
		for _, cc := range childChains {
			composed, err := composeCartesian(r.Selectors, cc.selectors)
			if err != nil {
				return nil, err
			}
			result = append(result, &chain{selectors: composed, decls: cc.decls})
		}
	}
	return result, nil
}

// composeCartesian combines every ancestor selector with every inner
// selector (n×k expansion).
func composeCartesian(ancestors, inner []*ast.Selector) ([]*ast.Selector, error) {
	var out []*ast.Selector
	for _, anc := range ancestors {
		for _, in := range inner {
			composed, err := composeSelector(anc, in)
			if err != nil {
				return nil, err
			}
			out = append(out, composed)
		}
	}
	return out, nil
}

// composeSelector composes a single ancestor/inner selector pair: if the
// inner selector's first sequence carries an ancestor-
// reference head ('&'), the ancestor is spliced in at that position,
// fusing the '&' sequence's tail onto the ancestor's last sequence;
// otherwise ancestor and inner are joined with a descendant combinator.
func composeSelector(ancestor, inner *ast.Selector) (*ast.Selector, error) {
	if len(inner.Sequences) == 0 {
		return nil, &cssperr.RuntimeError{Detail: "selector with no sequences reached the flattener"}
	}
	head := inner.Sequences[0]
	if head.HeadKind != ast.HeadAncestor {
		return &ast.Selector{
			Sequences:   append(append([]*ast.SimpleSelectorSequence{}, ancestor.Sequences...), inner.Sequences...),
			Combinators: append(append(append([]ast.Combinator{}, ancestor.Combinators...), ast.Descendant), inner.Combinators...),
			Position:    ancestor.Position,
		}, nil
	}

	fused := &ast.SimpleSelectorSequence{
		HeadKind: ancestor.Sequences[len(ancestor.Sequences)-1].HeadKind,
		HeadName: ancestor.Sequences[len(ancestor.Sequences)-1].HeadName,
		Tail: append(
			append([]ast.SelectorTail{}, ancestor.Sequences[len(ancestor.Sequences)-1].Tail...),
			head.Tail...,
		),
		Position: ancestor.Sequences[len(ancestor.Sequences)-1].Position,
	}

	sequences := append(append([]*ast.SimpleSelectorSequence{}, ancestor.Sequences[:len(ancestor.Sequences)-1]...), fused)
	sequences = append(sequences, inner.Sequences[1:]...)

	combinators := append([]ast.Combinator{}, ancestor.Combinators...)
	combinators = append(combinators, inner.Combinators...)

	return &ast.Selector{Sequences: sequences, Combinators: combinators, Position: ancestor.Position}, nil
}
