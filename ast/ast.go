// Package ast defines the typed syntax tree produced by package parser and
// consumed by the importer, solver, flattener, and emitter passes.
//
// Nodes carry an optional Position for diagnostics. The package defines
// no equality helper over nodes.
package ast

import "fmt"

// Position tracks where a node started in its source file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is the common interface implemented by every AST type.
type Node interface {
	Pos() Position
}

// Statement is a top-level or nested ruleset-body element.
type Statement interface {
	Node
	stmtNode()
}

// Value is any node that can appear on the right-hand side of a declaration
// or variable definition: an expression tree or a leaf literal.
type Value interface {
	Node
	valueNode()
}

// Stylesheet is the root of a parsed top-level file.
type Stylesheet struct {
	Charset    *Charset
	Imports    []*Import
	Statements []Statement
	Position   Position
}

func (s *Stylesheet) Pos() Position { return s.Position }

// ImportedStylesheet is the result of inlining an @import: a Stylesheet's
// statements without its own charset, spliced into the importer's tree.
type ImportedStylesheet struct {
	Imports    []*Import
	Statements []Statement
	Position   Position
}

func (s *ImportedStylesheet) Pos() Position { return s.Position }
func (s *ImportedStylesheet) stmtNode()     {}

// Charset is the payload of an `@charset "...";` rule. It may only appear
// as the first element of a Stylesheet.
type Charset struct {
	Name     string
	Position Position
}

func (c *Charset) Pos() Position { return c.Position }

// Import is a single `@import ...;` reference. URI is either a quoted
// string or a Uri value node.
type Import struct {
	URI      Value
	Position Position
}

func (i *Import) Pos() Position { return i.Position }

// RuleSet is a selector group plus a block of inner statements. Before the
// flattener runs, inner statements may include nested RuleSets and VarDefs;
// afterward, neither remains.
type RuleSet struct {
	Selectors  []*Selector
	Statements []Statement
	Position   Position
}

func (r *RuleSet) Pos() Position { return r.Position }
func (r *RuleSet) stmtNode()     {}

// Declaration is a property: value pair, optionally !important.
type Declaration struct {
	Property   string
	Expr       Value
	Important  bool
	Position   Position
}

func (d *Declaration) Pos() Position { return d.Position }
func (d *Declaration) stmtNode()     {}

// VarDef is a `$name: expr;` binding. It exists only before the solver
// pass strips it from the tree.
type VarDef struct {
	Name     string
	Expr     Value
	Position Position
}

func (v *VarDef) Pos() Position { return v.Position }
func (v *VarDef) stmtNode()     {}

// AtRule is an opaque carrier for @media, @page, and any other at-keyword
// this dialect does not give special meaning to. Parameters is the raw
// text between the at-keyword and the `{`/`;`. Block is nil for
// statement-less at-rules (those ending in `;` rather than a block).
// `@import` is never parsed as an AtRule.
type AtRule struct {
	Name       string
	Parameters string
	Block      []Statement
	Position   Position
}

func (a *AtRule) Pos() Position { return a.Position }
func (a *AtRule) stmtNode()     {}
