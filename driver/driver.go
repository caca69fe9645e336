// Package driver composes the full compile pipeline: source
// reading, parsing, import inlining, solving, flattening, and emission.
// Grounded on cmd/lessgo/main.go's pipeline wiring (read -> parse ->
// resolve imports -> render) and handler.go's error-to-status pattern,
// generalized from error-to-HTTP-status to error-to-exit-status.
package driver

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/emitter"
	"github.com/csspp/csspp/flattener"
	"github.com/csspp/csspp/importer"
	"github.com/csspp/csspp/internal/config"
	"github.com/csspp/csspp/internal/source"
	"github.com/csspp/csspp/parser"
	"github.com/csspp/csspp/solver"
)

// Driver composes one compile pipeline. The zero value is not usable;
// construct with New.
type Driver struct {
	opts   config.Options
	fs     fs.FS
	logger *log.Logger

	// PropagateErrors makes Compile return SyntaxError/CSSError-kind
	// errors instead of the driver reporting and the caller exiting; set
	// this for programmatic callers (the HTTP handler, tests) that want
	// the error value rather than a logged message and a process exit.
	PropagateErrors bool

	Registry *solver.Registry
}

// New constructs a Driver. fsys is consulted for @import resolution; a
// nil fsys disables import resolution regardless of opts.EnableImports.
func New(opts config.Options, fsys fs.FS, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Driver{opts: opts, fs: fsys, logger: logger}
}

// Compile runs the full pipeline over src (already read as text) whose
// logical path is path, returning the emitted CSS.
func (d *Driver) Compile(path, src string) (string, error) {
	sheet, err := parser.ParseString(path, src)
	if err != nil {
		return "", d.handle(err)
	}

	if d.opts.EnableImports && d.fs != nil {
		imp := importer.New(importer.Options{
			FS:                       d.fs,
			CurfileRelative:          d.opts.CurfileRelativeImports,
			ToplevelRelative:         d.opts.ToplevelRelativeImports,
			StopOnNotFound:           false,
			DemoteImportSyntaxErrors: true,
			Logger:                   d.logger,
		})
		if err := imp.Inline(sheet, path); err != nil {
			return "", d.handle(err)
		}
	}

	if d.opts.EnableSolve {
		if err := solver.Solve(sheet, d.Registry); err != nil {
			return "", d.handle(err)
		}
	}

	if d.opts.EnableFlatten {
		if !d.opts.EnableSolve {
			return "", d.handle(&cssperr.RuntimeError{Detail: "enable-flatten requires enable-solve"})
		}
		if err := flattener.Flatten(sheet); err != nil {
			return "", d.handle(err)
		}
	}

	if err := d.verifyCharset(sheet, path, src); err != nil {
		return "", d.handle(err)
	}

	return emitter.Emit(sheet, emitter.Options{}), nil
}

// CompileBytes reads raw bytes via internal/source (encoding sniffing),
// then runs Compile on the decoded text.
func (d *Driver) CompileBytes(path string, data []byte) (string, error) {
	result, err := source.Read(data, source.Options{
		SourceEncoding:  d.opts.SourceEncoding,
		DefaultEncoding: d.opts.DefaultEncoding,
	})
	if err != nil {
		var notFound interface{ EncodingName() string }
		if errors.As(err, &notFound) {
			return "", d.handle(&cssperr.EncodingNotFound{Name: notFound.EncodingName()})
		}
		return "", d.handle(err)
	}
	return d.Compile(path, result.Text)
}

// verifyCharset implements the supplemented @charset round-trip check
// (SPEC_FULL.md, grounded on cssypy/readers.py) over the decoded text src,
// not the raw input bytes: when src begins with an `@charset "name"`
// pattern, the parsed AST must carry an `@charset` rule with that name.
// A BOM has already been stripped from src and is not checked here.
func (d *Driver) verifyCharset(sheet *ast.Stylesheet, path, src string) error {
	result, err := source.Read([]byte(src), source.Options{SourceEncoding: d.opts.SourceEncoding})
	if err != nil || !result.Sniffed {
		return nil
	}
	if sheet.Charset == nil || !equalFoldEncoding(sheet.Charset.Name, result.Encoding) {
		return &cssperr.SyntaxError{
			Filename: path,
			Kind:     "charset-mismatch",
			Text:     result.Encoding,
		}
	}
	return nil
}

func equalFoldEncoding(a, b string) bool {
	norm := func(s string) string {
		out := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			out = append(out, c)
		}
		return string(out)
	}
	return norm(a) == norm(b)
}

// handle implements the propagate-vs-report policy: when
// PropagateErrors is set the error is returned as-is (library mode);
// otherwise it is logged via the reporter collaborator and a sentinel
// wrapping it is returned so the CLI layer can map it to exit code 1.
func (d *Driver) handle(err error) error {
	if d.PropagateErrors {
		return err
	}
	d.logger.Printf("%v", err)
	return &Reported{Cause: err}
}

// Reported wraps an error that has already been logged to the driver's
// reporter; the cmd/csspp layer checks for it to decide the exit code
// without double-printing the message.
type Reported struct{ Cause error }

func (r *Reported) Error() string { return r.Cause.Error() }
func (r *Reported) Unwrap() error { return r.Cause }

// IsFatalKind reports whether err is one of the always-fatal kinds
// (as opposed to an ImportNotFound that default policy only logs and
// skips).
func IsFatalKind(err error) bool {
	var (
		syn  *cssperr.SyntaxError
		circ *cssperr.CircularImport
		enc  *cssperr.EncodingNotFound
		typ  *cssperr.TypeError
		varN *cssperr.VarNameError
		val  *cssperr.ValueError
		fn   *cssperr.FunctionNotFound
	)
	return errors.As(err, &syn) || errors.As(err, &circ) || errors.As(err, &enc) ||
		errors.As(err, &typ) || errors.As(err, &varN) || errors.As(err, &val) || errors.As(err, &fn)
}
