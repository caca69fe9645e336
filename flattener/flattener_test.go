package flattener_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/emitter"
	"github.com/csspp/csspp/flattener"
	"github.com/csspp/csspp/parser"
)

func flatten(t *testing.T, src string) *ast.Stylesheet {
	t.Helper()
	sheet, err := parser.ParseString("test.csspp", src)
	require.NoError(t, err)
	require.NoError(t, flattener.Flatten(sheet))
	return sheet
}

func TestFlattenDescendantNesting(t *testing.T) {
	sheet := flatten(t, "a { b { color: red; } }")
	require.Len(t, sheet.Statements, 2)
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n}\na b {\n    color: red;\n}\n", out)
}

func TestFlattenAncestorFusesOntoLastSequence(t *testing.T) {
	sheet := flatten(t, "a { &:hover { color: blue; } }")
	require.Len(t, sheet.Statements, 2)
	out := emitter.Emit(sheet, emitter.Options{})
	require.Contains(t, out, "a:hover {\n    color: blue;\n}\n")
}

func TestFlattenCartesianExpandsMultipleSelectors(t *testing.T) {
	sheet := flatten(t, "a, b { c { color: green; } }")
	rs, ok := sheet.Statements[1].(*ast.RuleSet)
	require.True(t, ok)
	require.Len(t, rs.Selectors, 2)
}

func TestFlattenPreservesDeclarationOrderBeforeNested(t *testing.T) {
	sheet := flatten(t, "a { color: red; b { color: blue; } }")
	first, ok := sheet.Statements[0].(*ast.RuleSet)
	require.True(t, ok)
	require.Len(t, first.Statements, 1)
	decl := first.Statements[0].(*ast.Declaration)
	require.Equal(t, "color", decl.Property)
}

func TestFlattenAtRuleBlockRecurses(t *testing.T) {
	sheet := flatten(t, "@media screen { a { b { color: red; } } }")
	at, ok := sheet.Statements[0].(*ast.AtRule)
	require.True(t, ok)
	require.Len(t, at.Block, 2)
}

func TestFlattenVarDefPresentIsRuntimeError(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "$x: 1px; a { color: red; }")
	require.NoError(t, err)
	err = flattener.Flatten(sheet)
	require.Error(t, err)
	var rtErr *cssperr.RuntimeError
	require.ErrorAs(t, err, &rtErr)
}
