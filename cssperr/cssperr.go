// Package cssperr defines the error taxonomy shared by the passes: parser,
// importer, solver, flattener, and driver each raise one of these rather than
// a bare fmt.Errorf, so callers can errors.As their way to the offending
// kind.
package cssperr

import "fmt"

// SyntaxError is a tokenization or parse failure.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Kind     string // offending token kind
	Text     string // offending token verbatim text
}

func (e *SyntaxError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: syntax error near %s %q", e.Filename, e.Line, e.Column, e.Kind, e.Text)
	}
	return fmt.Sprintf("%d:%d: syntax error near %s %q", e.Line, e.Column, e.Kind, e.Text)
}

func (e *SyntaxError) Unwrap() error { return nil }

// ImportNotFound means no finder resolved an @import URI.
type ImportNotFound struct {
	URI      string
	Filename string
	Line     int
	Column   int
}

func (e *ImportNotFound) Error() string {
	return fmt.Sprintf("%s:%d:%d: import not found: %s", e.Filename, e.Line, e.Column, e.URI)
}

func (e *ImportNotFound) Unwrap() error { return nil }

// CircularImport means the resolved import target is already an ancestor
// in the current import chain.
type CircularImport struct {
	Path  string
	Chain []string
}

func (e *CircularImport) Error() string {
	return fmt.Sprintf("circular import: %s (chain: %v)", e.Path, e.Chain)
}

func (e *CircularImport) Unwrap() error { return nil }

// EncodingNotFound means the runtime does not know an IANA encoding name.
type EncodingNotFound struct {
	Name string
}

func (e *EncodingNotFound) Error() string {
	return fmt.Sprintf("unknown encoding: %s", e.Name)
}

func (e *EncodingNotFound) Unwrap() error { return nil }

// TypeError is an invalid operand combination in the value algebra.
type TypeError struct {
	Op       string
	LHSKind  string
	RHSKind  string
	Filename string
	Line     int
	Column   int
	Detail   string // e.g. naming incompatible units
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("type error: %s %s %s", e.LHSKind, e.Op, e.RHSKind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, msg)
	}
	return msg
}

func (e *TypeError) Unwrap() error { return nil }

// VarNameError is a reference to an unbound variable.
type VarNameError struct {
	Name     string
	Filename string
	Line     int
	Column   int
}

func (e *VarNameError) Error() string {
	return fmt.Sprintf("%s:%d:%d: undefined variable: $%s", e.Filename, e.Line, e.Column, e.Name)
}

func (e *VarNameError) Unwrap() error { return nil }

// ValueError is an invalid argument to a built-in function.
type ValueError struct {
	Func     string
	Detail   string
	Filename string
	Line     int
	Column   int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid argument to %s(): %s", e.Filename, e.Line, e.Column, e.Func, e.Detail)
}

func (e *ValueError) Unwrap() error { return nil }

// FunctionNotFound is an unregistered function name or wrong arity.
type FunctionNotFound struct {
	Name     string
	Arity    int
	Filename string
	Line     int
	Column   int
}

func (e *FunctionNotFound) Error() string {
	return fmt.Sprintf("%s:%d:%d: no function %s/%d", e.Filename, e.Line, e.Column, e.Name, e.Arity)
}

func (e *FunctionNotFound) Unwrap() error { return nil }

// RuntimeError signals an internal invariant violation, such as the
// flattener encountering a VarDef (meaning the solver did not run).
type RuntimeError struct {
	Detail string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Detail
}

func (e *RuntimeError) Unwrap() error { return nil }
