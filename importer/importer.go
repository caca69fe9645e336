// Package importer walks a Stylesheet's imports list, resolving each URI
// to a filesystem path, and replacing the Import node with a parsed
// ImportedStylesheet. Grounded on titpetric/lessgo's importer.Importer
// (fs.FS-based resolution, recursive import processing), generalized
// with a four-step resolution order, an ordered import-sequence for
// cycle detection, and a quiet-vs-fatal not-found policy.
package importer

import (
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/parser"
)

// Finder is a user-supplied import resolver, consulted as step 3 of the
// resolution order. It returns a filesystem path if it can resolve uri,
// or ok=false otherwise.
type Finder func(uri string) (resolved string, ok bool)

// Options configures import resolution policy.
type Options struct {
	FS fs.FS

	// CurfileRelative enables resolution relative to the importing
	// file's directory (step 1). Default true.
	CurfileRelative bool
	// ToplevelRelative enables resolution relative to the top-level
	// stylesheet's directory (step 2). Default true.
	ToplevelRelative bool
	// Finders are consulted in order at step 3.
	Finders []Finder
	// Directories is the configured directory list consulted at step 4.
	Directories []string

	// StopOnNotFound makes an unresolved import fatal instead of a
	// logged, skipped import.
	StopOnNotFound bool
	// DemoteImportSyntaxErrors turns a syntax error in an imported file
	// into "skip this import" instead of propagating it.
	DemoteImportSyntaxErrors bool

	Logger *log.Logger
}

// Importer inlines @import nodes into a Stylesheet.
type Importer struct {
	opts Options
}

// New constructs an Importer.
func New(opts Options) *Importer {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Importer{opts: opts}
}

// Inline walks sheet.Imports (and the imports of everything transitively
// pulled in) and splices each resolvable import's parsed content into
// sheet.Statements, ahead of the stylesheet's own top-level statements,
// matching the grammar's "stylesheet := charset? (import)*
// (toplevel_statement)*" production order.
func (imp *Importer) Inline(sheet *ast.Stylesheet, topPath string) error {
	chain := []string{topPath}
	stmts, err := imp.inlineImports(sheet.Imports, sheet.Statements, topPath, topPath, chain)
	if err != nil {
		return err
	}
	sheet.Statements = stmts
	return nil
}

func (imp *Importer) inlineImports(imports []*ast.Import, stmts []ast.Statement, curFile, topFile string, chain []string) ([]ast.Statement, error) {
	var prefix []ast.Statement
	for _, in := range imports {
		uri, bare := importURI(in)
		if bare {
			continue
		}
		resolved, ok := imp.resolve(uri, curFile, topFile)
		if !ok {
			if imp.opts.StopOnNotFound {
				return nil, &cssperr.ImportNotFound{URI: uri, Filename: curFile, Line: in.Position.Line, Column: in.Position.Column}
			}
			imp.opts.Logger.Printf("import not found, skipping: %s", uri)
			continue
		}
		for _, anc := range chain {
			if anc == resolved {
				return nil, &cssperr.CircularImport{Path: resolved, Chain: append(append([]string{}, chain...), resolved)}
			}
		}

		data, err := fs.ReadFile(imp.opts.FS, resolved)
		if err != nil {
			if imp.opts.StopOnNotFound {
				return nil, &cssperr.ImportNotFound{URI: uri, Filename: curFile, Line: in.Position.Line, Column: in.Position.Column}
			}
			imp.opts.Logger.Printf("import not found, skipping: %s (%v)", uri, err)
			continue
		}

		importedSheet, err := parser.ParseString(resolved, string(data))
		if err != nil {
			if imp.opts.DemoteImportSyntaxErrors {
				imp.opts.Logger.Printf("syntax error in import %s, skipping: %v", resolved, err)
				continue
			}
			return nil, err
		}

		nextChain := append(append([]string{}, chain...), resolved)
		innerStmts, err := imp.inlineImports(importedSheet.Imports, importedSheet.Statements, resolved, topFile, nextChain)
		if err != nil {
			return nil, err
		}

		prefix = append(prefix, &ast.ImportedStylesheet{
			Statements: innerStmts,
			Position:   in.Position,
		})
	}

	out := make([]ast.Statement, 0, len(prefix)+len(stmts))
	out = append(out, prefix...)
	out = append(out, stmts...)
	return out, nil
}

func importURI(in *ast.Import) (uri string, bareIdentifier bool) {
	switch v := in.URI.(type) {
	case *ast.StringLit:
		return v.S, false
	case *ast.UriLit:
		return v.URI, false
	case *ast.IdentifierLit:
		return v.Name, true
	}
	return "", true
}

// resolve implements the four-step resolution order: curfile-relative,
// toplevel-relative, Finders, then Directories.
func (imp *Importer) resolve(uri, curFile, topFile string) (string, bool) {
	if imp.opts.CurfileRelative {
		if p, ok := tryJoin(imp.opts.FS, path.Dir(curFile), uri); ok {
			return p, true
		}
	}
	if imp.opts.ToplevelRelative {
		if p, ok := tryJoin(imp.opts.FS, path.Dir(topFile), uri); ok {
			return p, true
		}
	}
	for _, f := range imp.opts.Finders {
		if p, ok := f(uri); ok {
			return p, true
		}
	}
	for _, dir := range imp.opts.Directories {
		if p, ok := tryJoin(imp.opts.FS, dir, uri); ok {
			return p, true
		}
	}
	return "", false
}

func tryJoin(fsys fs.FS, dir, uri string) (string, bool) {
	uri = strings.TrimPrefix(uri, "./")
	candidate := path.Clean(path.Join(dir, uri))
	if fsys == nil {
		return "", false
	}
	if _, err := fs.Stat(fsys, candidate); err == nil {
		return candidate, true
	}
	return "", false
}
