package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/parser"
	"github.com/csspp/csspp/solver"
)

func TestMathFuncsPreserveUnit(t *testing.T) {
	sheet := solve(t, "a { width: ceil(2.1px); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	dim, ok := decl.Expr.(*ast.DimensionLit)
	require.True(t, ok)
	require.InDelta(t, 3, dim.N, 1e-9)
	require.Equal(t, "px", dim.Unit)
}

func TestFloorPreservesPercentage(t *testing.T) {
	sheet := solve(t, "a { width: floor(33.7%); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	pct, ok := decl.Expr.(*ast.PercentageLit)
	require.True(t, ok)
	require.InDelta(t, 33, pct.N, 1e-9)
}

func TestPowFunc(t *testing.T) {
	sheet := solve(t, "a { width: pow(2, 10); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	num, ok := decl.Expr.(*ast.NumberLit)
	require.True(t, ok)
	require.InDelta(t, 1024, num.N, 1e-9)
}

func TestMinMaxFuncsReturnOriginalArg(t *testing.T) {
	sheet := solve(t, "a { width: min(4px, 2px); height: max(4px, 2px); }")
	rs := sheet.Statements[0].(*ast.RuleSet)
	width := rs.Statements[0].(*ast.Declaration).Expr.(*ast.DimensionLit)
	height := rs.Statements[1].(*ast.Declaration).Expr.(*ast.DimensionLit)
	require.InDelta(t, 2, width.N, 1e-9)
	require.InDelta(t, 4, height.N, 1e-9)
}

func TestPercentageFunc(t *testing.T) {
	sheet := solve(t, "a { opacity: percentage(0.5); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	pct, ok := decl.Expr.(*ast.PercentageLit)
	require.True(t, ok)
	require.InDelta(t, 50, pct.N, 1e-9)
}

func TestDarkenBuiltin(t *testing.T) {
	sheet := solve(t, "a { color: darken(#ffffff, 50%); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	hex, ok := decl.Expr.(*ast.HexColorLit)
	require.True(t, ok)
	require.Equal(t, "808080", hex.Hex)
}

func TestSpinBuiltinRotatesHue(t *testing.T) {
	sheet := solve(t, "a { color: spin(#ff0000, 120); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	hex, ok := decl.Expr.(*ast.HexColorLit)
	require.True(t, ok)
	require.Equal(t, "00ff00", hex.Hex)
}

func TestMixBuiltinBlendsEqually(t *testing.T) {
	sheet := solve(t, "a { color: mix(#000000, #ffffff, 50%); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	hex, ok := decl.Expr.(*ast.HexColorLit)
	require.True(t, ok)
	require.Equal(t, "808080", hex.Hex)
}

func TestGreyscaleBuiltinZeroesSaturation(t *testing.T) {
	sheet := solve(t, "a { color: greyscale(#ff0000); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	hex, ok := decl.Expr.(*ast.HexColorLit)
	require.True(t, ok)
	require.Equal(t, "808080", hex.Hex)
}

func TestDesaturateBuiltin(t *testing.T) {
	sheet := solve(t, "a { color: desaturate(hsl(0, 100%, 50%), 100%); }")
	decl := sheet.Statements[0].(*ast.RuleSet).Statements[0].(*ast.Declaration)
	_, ok := decl.Expr.(*ast.HexColorLit)
	require.True(t, ok)
}

func TestMathFuncWrongArityIsFunctionNotFound(t *testing.T) {
	sheet, err := parser.ParseString("test.csspp", "a { width: ceil(1px, 2px); }")
	require.NoError(t, err)
	require.Error(t, solver.Solve(sheet, nil))
}
