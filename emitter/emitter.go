// Package emitter walks a flattened Stylesheet and writes CSS text,
// with identifier/string escaping, soft-break
// selector-list wrapping, and precedence-aware expression parenthesization.
// Grounded on titpetric/lessgo's formatter.Formatter (bytes.Buffer sink,
// indent-level counter, writeIndent helper), generalized to the two-level
// nesting a flattened tree actually has and to the richer escaping and
// line-wrapping rules this dialect requires.
package emitter

import (
	"fmt"
	"strings"

	"github.com/csspp/csspp/ast"
)

// ColorFormat selects how HexColorLit/RgbColorLit/HslColorLit are
// rendered, independent of how they were written in the source.
type ColorFormat int

const (
	// ColorAny preserves each color literal's own original form.
	ColorAny ColorFormat = iota
	ColorHex
	ColorRGB
	ColorHSL
)

// Options configures the emitter.
type Options struct {
	// IndentWidth is the number of spaces per nesting level. Default 4.
	IndentWidth int
	// LineWidth is the soft-break threshold for selector lists. Default 80.
	LineWidth int
	// Colors selects the output color format. Default ColorAny.
	Colors ColorFormat
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.LineWidth == 0 {
		o.LineWidth = 80
	}
	return o
}

// Emitter writes a Stylesheet as CSS text.
type Emitter struct {
	opts   Options
	out    strings.Builder
	indent int

	// lineLen tracks the length of the current physical line already
	// flushed to out, for the selector soft-break rule.
	lineLen int
	// softBreakPending is not read or set by any code path: emitRuleSet
	// decides each selector break directly from lineLen and LineWidth.
	softBreakPending bool
}

// New constructs an Emitter.
func New(opts Options) *Emitter {
	return &Emitter{opts: opts.withDefaults()}
}

// Emit renders sheet as CSS text. Precondition: sheet has already been
// flattened (no RuleSet nesting, no VarDef/VarRef remains).
func Emit(sheet *ast.Stylesheet, opts Options) string {
	e := New(opts)
	e.emitStylesheet(sheet)
	return e.out.String()
}

func (e *Emitter) writeIndent() {
	e.write(strings.Repeat(" ", e.indent*e.opts.IndentWidth))
}

// write appends s to the output, tracking line length for the soft-break
// rule; a literal newline in s resets the tracked length.
func (e *Emitter) write(s string) {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		e.lineLen = len(s) - i - 1
	} else {
		e.lineLen += len(s)
	}
	e.out.WriteString(s)
}

func (e *Emitter) emitStylesheet(sheet *ast.Stylesheet) {
	if sheet.Charset != nil {
		e.writeIndent()
		e.write(fmt.Sprintf("@charset %s;\n", quoteString(sheet.Charset.Name)))
	}
	for _, stmt := range sheet.Statements {
		e.emitStatement(stmt)
	}
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.RuleSet:
		e.emitRuleSet(n)
	case *ast.Declaration:
		e.emitDeclaration(n)
	case *ast.AtRule:
		e.emitAtRule(n)
	case *ast.ImportedStylesheet:
		for _, s := range n.Statements {
			e.emitStatement(s)
		}
	case *ast.VarDef:
		// Should not survive to emit time; a solved tree never has one.
	}
}

// emitRuleSet implements the selector-list soft-break rule: selectors
// are joined by ", " with one soft-break candidate per
// separator, converted to a real newline+indent only when the
// accumulated line would exceed opts.LineWidth.
func (e *Emitter) emitRuleSet(r *ast.RuleSet) {
	e.writeIndent()
	for i, sel := range r.Selectors {
		selText := emitSelector(sel)
		if i > 0 {
			candidate := ", " + selText
			if e.lineLen+len(candidate) > e.opts.LineWidth {
				e.write(",\n")
				e.writeIndent()
				e.write(selText)
				continue
			}
			e.write(candidate)
			continue
		}
		e.write(selText)
	}
	e.write(" {\n")
	e.indent++
	for _, stmt := range r.Statements {
		e.emitStatement(stmt)
	}
	e.indent--
	e.writeIndent()
	e.write("}\n")
}

func (e *Emitter) emitDeclaration(d *ast.Declaration) {
	e.writeIndent()
	e.write(escapeIdent(d.Property))
	e.write(": ")
	e.write(e.emitValue(d.Expr, 0))
	if d.Important {
		e.write(" !important")
	}
	e.write(";\n")
}

func (e *Emitter) emitAtRule(a *ast.AtRule) {
	e.writeIndent()
	e.write("@" + a.Name)
	if a.Parameters != "" {
		e.write(" " + a.Parameters)
	}
	if a.Block == nil {
		e.write(";\n")
		return
	}
	e.write(" {\n")
	e.indent++
	for _, stmt := range a.Block {
		e.emitStatement(stmt)
	}
	e.indent--
	e.writeIndent()
	e.write("}\n")
}
