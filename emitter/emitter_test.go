package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/emitter"
)

func TestEmitSimpleDeclaration(t *testing.T) {
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "color", Expr: &ast.IdentifierLit{Name: "red"}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    color: red;\n}\n", out)
}

func TestEmitCharset(t *testing.T) {
	sheet := &ast.Stylesheet{Charset: &ast.Charset{Name: "utf-8"}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "@charset \"utf-8\";\n", out)
}

func TestEmitImportantDeclaration(t *testing.T) {
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "color", Expr: &ast.IdentifierLit{Name: "red"}, Important: true},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    color: red !important;\n}\n", out)
}

func TestEmitAddInsideMulParenthesizes(t *testing.T) {
	// (2 + 3) * 4, built directly as an AST: Mul{Add{2,3}, 4}
	// the Add child has lower precedence than Mul, so it must be parenthesized.
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "width", Expr: &ast.BinaryOp{
					Op:  ast.MulOp,
					LHS: &ast.BinaryOp{Op: ast.AddOp, LHS: &ast.NumberLit{N: 2}, RHS: &ast.NumberLit{N: 3}},
					RHS: &ast.NumberLit{N: 4},
				}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    width: (2 + 3) * 4;\n}\n", out)
}

func TestEmitAddOfMulDoesNotParenthesize(t *testing.T) {
	// 2 * 3 + 4: Mul child of Add has higher precedence, no parens needed.
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "width", Expr: &ast.BinaryOp{
					Op:  ast.AddOp,
					LHS: &ast.BinaryOp{Op: ast.MulOp, LHS: &ast.NumberLit{N: 2}, RHS: &ast.NumberLit{N: 3}},
					RHS: &ast.NumberLit{N: 4},
				}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    width: 2 * 3 + 4;\n}\n", out)
}

func TestEmitFwdSlashJoin(t *testing.T) {
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "font", Expr: &ast.NaryOp{
					Op: ast.JoinOp,
					Operands: []ast.Value{
						&ast.BinaryOp{Op: ast.FwdSlashOp, LHS: &ast.DimensionLit{N: 12, Unit: "px"}, RHS: &ast.NumberLit{N: 1.5}},
						&ast.IdentifierLit{Name: "sans-serif"},
					},
				}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    font: 12px/1.5 sans-serif;\n}\n", out)
}

func TestEmitHexColorCollapsesToShortForm(t *testing.T) {
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "color", Expr: &ast.HexColorLit{Hex: "ffffff"}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    color: #fff;\n}\n", out)
}

func TestEmitHexColorAsRGB(t *testing.T) {
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "color", Expr: &ast.HexColorLit{Hex: "ff0000"}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{Colors: emitter.ColorRGB})
	require.Equal(t, "a {\n    color: rgb(255, 0, 0);\n}\n", out)
}

func TestEmitIdentifierWithLeadingDigitIsEscaped(t *testing.T) {
	// leading digit must always be escaped; since the following char 'f'
	// is itself a hex digit, the padded six-digit form is used instead of
	// the minimal form, so no separating space is needed.
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: []*ast.Selector{{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: "a"}}}},
			Statements: []ast.Statement{
				&ast.Declaration{Property: "2fast", Expr: &ast.IdentifierLit{Name: "x"}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{})
	require.Equal(t, "a {\n    \\000032fast: x;\n}\n", out)
}

func TestEmitSelectorListSoftBreak(t *testing.T) {
	long := make([]*ast.Selector, 0, 6)
	for _, name := range []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd", "eeeeeeeeee", "ffffffffff"} {
		long = append(long, &ast.Selector{Sequences: []*ast.SimpleSelectorSequence{{HeadKind: ast.HeadType, HeadName: name}}})
	}
	sheet := &ast.Stylesheet{Statements: []ast.Statement{
		&ast.RuleSet{
			Selectors: long,
			Statements: []ast.Statement{
				&ast.Declaration{Property: "color", Expr: &ast.IdentifierLit{Name: "red"}},
			},
		},
	}}
	out := emitter.Emit(sheet, emitter.Options{LineWidth: 40})
	require.Contains(t, out, ",\n")
}
