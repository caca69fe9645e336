// Package source turns raw input bytes into UTF-8 text, and reports
// whether sniffing found a byte-order/charset signature the driver must
// then verify against an actual `@charset` rule in the parsed AST (the
// round-trip check cssypy/readers.py performs). titpetric/lessgo never
// reads LESS from anything but an `io/fs.FS` of already-decoded text, so
// there is no file to generalize from here; this package is wired to
// golang.org/x/text/encoding + encoding/htmlindex instead, since that is
// the corpus's only encoding-transcoding library.
package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Options controls how Read resolves the input's encoding.
type Options struct {
	// SourceEncoding, if non-empty, forces the input encoding and skips
	// BOM/@charset sniffing entirely.
	SourceEncoding string
	// DefaultEncoding is used when sniffing finds no signature. Empty
	// means "utf-8".
	DefaultEncoding string
}

// Result is the outcome of decoding one input file.
type Result struct {
	// Text is the decoded UTF-8 source.
	Text string
	// Encoding is the resolved IANA encoding name actually used.
	Encoding string
	// Sniffed is true when a BOM or an embedded @charset byte pattern was
	// found; the driver must then confirm an `@charset` rule with a
	// matching name appears in the parsed AST.
	Sniffed bool
}

// sniffWindow is the number of leading bytes the byte-pattern table is
// allowed to inspect.
const sniffWindow = 212

// Read decodes data into UTF-8 text, choosing an encoding in order:
// explicit SourceEncoding, then BOM/@charset sniffing, then
// DefaultEncoding.
func Read(data []byte, opts Options) (*Result, error) {
	if opts.SourceEncoding != "" {
		text, err := decodeWith(data, opts.SourceEncoding)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Encoding: opts.SourceEncoding}, nil
	}

	if name, body, ok := sniff(data); ok {
		text, err := decodeWith(body, name)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Encoding: name, Sniffed: true}, nil
	}

	def := opts.DefaultEncoding
	if def == "" {
		def = "utf-8"
	}
	text, err := decodeWith(data, def)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Encoding: def}, nil
}

func decodeWith(data []byte, name string) (string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", &encodingNotFoundError{Name: name}
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", name, err)
	}
	return string(out), nil
}

// encodingNotFoundError is returned as cssperr.EncodingNotFound by
// callers that wrap Read; kept unexported here so internal/source has no
// dependency on cssperr, and the driver translates it at its boundary.
type encodingNotFoundError struct{ Name string }

func (e *encodingNotFoundError) Error() string {
	return fmt.Sprintf("encoding not found: %s", e.Name)
}

func (e *encodingNotFoundError) EncodingName() string { return e.Name }

// sniff implements the BOM/@charset byte-pattern table, restricted to
// the window's first sniffWindow bytes. It covers the
// standard Unicode BOMs and the ASCII-compatible and UTF-16 forms of an
// embedded `@charset "name";` rule; body is data with any BOM stripped
// (an embedded @charset keeps the full byte slice, since the charset
// rule itself must remain in the decoded text for the round-trip check).
func sniff(data []byte) (name string, body []byte, ok bool) {
	window := data
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}

	type bom struct {
		sig []byte
		enc string
	}
	boms := []bom{
		{[]byte{0xEF, 0xBB, 0xBF}, "utf-8"},
		{[]byte{0xFF, 0xFE, 0x00, 0x00}, "utf-32le"},
		{[]byte{0x00, 0x00, 0xFE, 0xFF}, "utf-32be"},
		{[]byte{0xFF, 0xFE}, "utf-16le"},
		{[]byte{0xFE, 0xFF}, "utf-16be"},
	}
	for _, b := range boms {
		if bytes.HasPrefix(window, b.sig) {
			return b.enc, data[len(b.sig):], true
		}
	}

	if n, ok := sniffCharsetASCII(window); ok {
		return n, data, true
	}
	if n, ok := sniffCharsetWide(window, false); ok {
		return n, data, true
	}
	if n, ok := sniffCharsetWide(window, true); ok {
		return n, data, true
	}
	return "", nil, false
}

// sniffCharsetASCII looks for a plain `@charset "name"` prefix, the
// 8-bit/ASCII-superset case (utf-8, latin-1, windows-1252, ...).
func sniffCharsetASCII(window []byte) (string, bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(window, []byte(prefix)) {
		return "", false
	}
	rest := window[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return string(rest[:end]), true
}

// sniffCharsetWide looks for the same pattern with each ASCII byte
// widened to 16 bits (big-endian when be is true), the shape a UTF-16
// encoded file without a BOM would present.
func sniffCharsetWide(window []byte, be bool) (string, bool) {
	const prefix = `@charset "`
	need := len(prefix) * 2
	if len(window) < need {
		return "", false
	}
	for i, c := range []byte(prefix) {
		hi, lo := window[i*2], window[i*2+1]
		if !be {
			hi, lo = lo, hi
		}
		if hi != 0 || lo != c {
			return "", false
		}
	}
	var name bytes.Buffer
	for i := need; i+1 < len(window); i += 2 {
		hi, lo := window[i], window[i+1]
		if !be {
			hi, lo = lo, hi
		}
		if hi != 0 {
			return "", false
		}
		if lo == '"' {
			return name.String(), true
		}
		name.WriteByte(lo)
	}
	return "", false
}

// EncodeOutput transcodes UTF-8 text into the destination encoding,
// falling back to a \hhhhhh CSS escape for any rune the destination
// encoding cannot represent.
func EncodeOutput(text, destEncoding string) ([]byte, error) {
	if destEncoding == "" || destEncoding == "utf-8" {
		return []byte(text), nil
	}
	enc, err := htmlindex.Get(destEncoding)
	if err != nil {
		return nil, &encodingNotFoundError{Name: destEncoding}
	}
	return transcodeWithEscapes(text, enc)
}

func transcodeWithEscapes(text string, enc encoding.Encoding) ([]byte, error) {
	var out bytes.Buffer
	encoder := enc.NewEncoder()
	for _, r := range text {
		chunk, err := encoder.String(string(r))
		if err != nil {
			fmt.Fprintf(&out, "\\%06x", r)
			continue
		}
		out.WriteString(chunk)
	}
	return out.Bytes(), nil
}
