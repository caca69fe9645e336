package solver

import (
	"github.com/csspp/csspp/ast"
)

// Solver walks an AST resolving variables and folding constant
// expressions.
type Solver struct {
	namespaces namespaceStack
	registry   *Registry
}

// New constructs a Solver. A nil registry falls back to
// NewDefaultRegistry (rgb/hsl plus the math and color built-ins).
func New(registry *Registry) *Solver {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &Solver{registry: registry}
}

// Solve mutates sheet in place: VarDefs are stripped, VarRefs substituted,
// and arithmetic expressions folded. After Solve returns successfully, no
// VarDef or VarRef remains anywhere in the tree.
func Solve(sheet *ast.Stylesheet, registry *Registry) error {
	s := New(registry)
	return s.solveStylesheet(sheet)
}

func (s *Solver) solveStylesheet(sheet *ast.Stylesheet) error {
	s.namespaces.push()
	stmts, err := s.solveStatements(sheet.Statements)
	if err != nil {
		s.namespaces.pop()
		return err
	}
	sheet.Statements = stmts
	s.namespaces.pop()
	return nil
}

// solveImportedStylesheet processes an ImportedStylesheet's own namespace
// and merges its top scope into the containing namespace's top scope for
// names not already bound there, before the ImportedStylesheet is
// spliced into its parent's statement list by the importer/flattener.
func (s *Solver) solveImportedStylesheet(is *ast.ImportedStylesheet) error {
	s.namespaces.push()
	stmts, err := s.solveStatements(is.Statements)
	if err != nil {
		s.namespaces.pop()
		return err
	}
	is.Statements = stmts
	top := s.namespaces.pop().pop()

	parent := s.namespaces.current().top()
	for k, v := range top {
		if _, exists := parent[k]; !exists {
			parent[k] = v
		}
	}
	return nil
}

func (s *Solver) solveStatements(stmts []ast.Statement) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.VarDef:
			val, err := s.foldExpr(n.Expr)
			if err != nil {
				return nil, err
			}
			s.namespaces.current().bind(n.Name, val)
			// VarDef is stripped from the output AST.

		case *ast.Declaration:
			val, err := s.foldExpr(n.Expr)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Declaration{Property: n.Property, Expr: val, Important: n.Important, Position: n.Position})

		case *ast.RuleSet:
			s.namespaces.current().push()
			inner, err := s.solveStatements(n.Statements)
			if err != nil {
				s.namespaces.current().pop()
				return nil, err
			}
			s.namespaces.current().pop()
			out = append(out, &ast.RuleSet{Selectors: n.Selectors, Statements: inner, Position: n.Position})

		case *ast.ImportedStylesheet:
			if err := s.solveImportedStylesheet(n); err != nil {
				return nil, err
			}
			out = append(out, n)

		case *ast.AtRule:
			s.namespaces.current().push()
			inner, err := s.solveStatements(n.Block)
			if err != nil {
				s.namespaces.current().pop()
				return nil, err
			}
			s.namespaces.current().pop()
			out = append(out, &ast.AtRule{Name: n.Name, Parameters: n.Parameters, Block: inner, Position: n.Position})

		default:
			out = append(out, stmt)
		}
	}
	return out, nil
}
