package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/parser"
)

func TestParseSimpleRuleSet(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "body { color: red; }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 1)

	rs, ok := sheet.Statements[0].(*ast.RuleSet)
	require.True(t, ok)
	require.Len(t, rs.Selectors, 1)
	require.Len(t, rs.Statements, 1)

	decl, ok := rs.Statements[0].(*ast.Declaration)
	require.True(t, ok)
	require.Equal(t, "color", decl.Property)
}

func TestParseVarDef(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "$primary: #fff; body { color: $primary; }")
	require.NoError(t, err)
	require.Len(t, sheet.Statements, 2)

	vd, ok := sheet.Statements[0].(*ast.VarDef)
	require.True(t, ok)
	require.Equal(t, "primary", vd.Name)

	rs, ok := sheet.Statements[1].(*ast.RuleSet)
	require.True(t, ok)
	decl := rs.Statements[0].(*ast.Declaration)
	ref, ok := decl.Expr.(*ast.VarRef)
	require.True(t, ok)
	require.Equal(t, "primary", ref.Name)
}

func TestParseArithmeticExpression(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "a { width: 2px + 3px; }")
	require.NoError(t, err)
	rs := sheet.Statements[0].(*ast.RuleSet)
	decl := rs.Statements[0].(*ast.Declaration)
	bin, ok := decl.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.AddOp, bin.Op)
}

func TestParseSlashPromotedToDivisionWhenUsedInAdditiveChain(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "a { z: 8/4+1; }")
	require.NoError(t, err)
	rs := sheet.Statements[0].(*ast.RuleSet)
	decl := rs.Statements[0].(*ast.Declaration)
	add, ok := decl.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.AddOp, add.Op)

	div, ok := add.LHS.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.DivisionOp, div.Op, "8/4 becomes an operand of + and must no longer be a value-separator slash")
}

func TestParseNestedRuleSet(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "a { b { color: red; } }")
	require.NoError(t, err)
	outer := sheet.Statements[0].(*ast.RuleSet)
	inner, ok := outer.Statements[0].(*ast.RuleSet)
	require.True(t, ok)
	require.Len(t, inner.Statements, 1)
}

func TestParseImportantDeclaration(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "a { color: red !important; }")
	require.NoError(t, err)
	rs := sheet.Statements[0].(*ast.RuleSet)
	decl := rs.Statements[0].(*ast.Declaration)
	require.True(t, decl.Important)
}

func TestParseCharset(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", `@charset "utf-8";`)
	require.NoError(t, err)
	require.Equal(t, "utf-8", sheet.Charset.Name)
}

func TestParseSyntaxErrorOnUnclosedBlock(t *testing.T) {
	_, err := parser.ParseString("test.csspp", "a { color: red;")
	require.Error(t, err)
}

func TestParseAtRuleOpaqueBlock(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "@media screen { a { color: red; } }")
	require.NoError(t, err)
	at, ok := sheet.Statements[0].(*ast.AtRule)
	require.True(t, ok)
	require.Equal(t, "media", at.Name)
	require.Len(t, at.Block, 1)
}
