// Package config merges CLI flags, an optional INI-style file, and
// built-in defaults into one Options value, in CLI > file > default
// override order. Grounded on cssypy/optionsdict.py's explicit-precedence
// merge; the INI reader itself is a small bufio.Scanner-based parser,
// hand-rolled because no INI-parsing library appears anywhere in the
// retrieved corpus.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Options is the fully-resolved set of compile options.
type Options struct {
	DefaultEncoding string
	SourceEncoding  string
	DestEncoding    string

	EnableImports bool
	EnableFlatten bool
	EnableSolve   bool

	CurfileRelativeImports  bool
	ToplevelRelativeImports bool
}

// Defaults returns the built-in default options.
func Defaults() Options {
	return Options{
		EnableImports:           true,
		EnableFlatten:           true,
		EnableSolve:             true,
		CurfileRelativeImports:  true,
		ToplevelRelativeImports: true,
	}
}

// Overlay represents one layer of possibly-unset option values, applied
// on top of a lower-precedence Options via Apply. A nil pointer means
// "not specified at this layer"; a non-nil pointer to an empty string
// still overrides.
type Overlay struct {
	DefaultEncoding *string
	SourceEncoding  *string
	DestEncoding    *string

	EnableImports *bool
	EnableFlatten *bool
	EnableSolve   *bool

	CurfileRelativeImports  *bool
	ToplevelRelativeImports *bool
}

// Apply returns base with every non-nil field in o applied on top.
func (o Overlay) Apply(base Options) Options {
	if o.DefaultEncoding != nil {
		base.DefaultEncoding = *o.DefaultEncoding
	}
	if o.SourceEncoding != nil {
		base.SourceEncoding = *o.SourceEncoding
	}
	if o.DestEncoding != nil {
		base.DestEncoding = *o.DestEncoding
	}
	if o.EnableImports != nil {
		base.EnableImports = *o.EnableImports
	}
	if o.EnableFlatten != nil {
		base.EnableFlatten = *o.EnableFlatten
	}
	if o.EnableSolve != nil {
		base.EnableSolve = *o.EnableSolve
	}
	if o.CurfileRelativeImports != nil {
		base.CurfileRelativeImports = *o.CurfileRelativeImports
	}
	if o.ToplevelRelativeImports != nil {
		base.ToplevelRelativeImports = *o.ToplevelRelativeImports
	}
	return base
}

// Merge resolves Options as Defaults() overlaid by file, overlaid by cli.
func Merge(file, cli Overlay) Options {
	return cli.Apply(file.Apply(Defaults()))
}

// ReadINIFile parses an INI-style config file at path into an Overlay.
// Recognized sections are ignored for grouping purposes (flat key space);
// keys match the CLI flag names with dashes or underscores, case
// insensitive. Booleans accept yes/no/true/false/1/0/on/off/enable/disable.
func ReadINIFile(path string) (Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return Overlay{}, err
	}
	defer f.Close()
	return ParseINI(f)
}

// ParseINI parses INI-style "key=value" pairs (sections delimited by
// "[name]" are accepted but otherwise ignored), skipping blank lines and
// "#"/";" comments.
func ParseINI(r io.Reader) (Overlay, error) {
	var o Overlay
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return o, fmt.Errorf("config line %d: missing '='", lineNo)
		}
		key = normalizeKey(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		if err := setOverlayField(&o, key, val); err != nil {
			return o, fmt.Errorf("config line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return o, err
	}
	return o, nil
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.ReplaceAll(k, "-", "_")
}

func setOverlayField(o *Overlay, key, val string) error {
	switch key {
	case "default_encoding":
		o.DefaultEncoding = &val
	case "source_encoding":
		o.SourceEncoding = &val
	case "dest_encoding":
		o.DestEncoding = &val
	case "enable_imports":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		o.EnableImports = &b
	case "enable_flatten":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		o.EnableFlatten = &b
	case "enable_solve":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		o.EnableSolve = &b
	case "curfile_relative_imports":
		b, err := parseEnableDisable(val)
		if err != nil {
			return err
		}
		o.CurfileRelativeImports = &b
	case "toplevel_relative_imports":
		b, err := parseEnableDisable(val)
		if err != nil {
			return err
		}
		o.ToplevelRelativeImports = &b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on", "enable":
		return true, nil
	case "no", "false", "0", "off", "disable":
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func parseEnableDisable(s string) (bool, error) { return parseBool(s) }
