package emitter

import (
	"strconv"
	"strings"

	"github.com/csspp/csspp/ast"
	"github.com/csspp/csspp/value"
)

// escapeIdent re-escapes an already-decoded identifier for CSS output.
// Characters outside [A-Za-z0-9_-] and non-ASCII above U+007F become a
// \hh escape; a leading digit is force-escaped since an unescaped digit
// there would make the identifier parse as a number. Following cssypy's
// escape routines, the minimal hex form plus one trailing space separator
// is used unless the next source character would itself continue the hex
// escape (another hex digit or whitespace), in which case the full
// six-digit form is used instead so no separator is needed.
func escapeIdent(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		next, hasNext := rune(0), false
		if i+1 < len(runes) {
			next, hasNext = runes[i+1], true
		}
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteString(escapeRune(r, next, hasNext))
			continue
		}
		if isPlainIdentRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(escapeRune(r, next, hasNext))
	}
	return b.String()
}

func isPlainIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// escapeRune renders r as a CSS hex escape, choosing between the minimal
// form (+ trailing space) and the padded six-digit form depending on
// whether the following character would otherwise continue the escape.
func escapeRune(r rune, next rune, hasNext bool) string {
	hex := strconv.FormatInt(int64(r), 16)
	if hasNext && (isHexDigitRune(next) || isWhitespaceRune(next)) {
		return "\\" + strings.Repeat("0", 6-len(hex)) + hex
	}
	return "\\" + hex + " "
}

func isHexDigitRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// quoteString re-quotes a decoded string payload, preferring double
// quotes unless the payload contains a double quote and no single quote.
// The quote character and backslashes are backslash-escaped; a character
// that the output encoding cannot represent would be emitted as a
// six-hex-digit \hhhhhh escape, but since the emitter always writes UTF-8
// that branch is unreachable here (the encoding-restricted path belongs
// to the reader/writer collaborator, not this pass).
func quoteString(s string) string {
	quote := byte('"')
	if strings.ContainsRune(s, '"') && !strings.ContainsRune(s, '\'') {
		quote = '\''
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case byte(r) == quote && r < 128:
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// emitHexColor implements the short-hex-form collapse and the optional
// color-format reselection.
func (e *Emitter) emitHexColor(n *ast.HexColorLit) string {
	if e.opts.Colors == ColorRGB || e.opts.Colors == ColorHSL {
		c := hexToColor(n.Hex)
		return e.emitColorValue(c)
	}
	return "#" + collapseHex(n.Hex)
}

func (e *Emitter) emitColorValue(c value.Color) string {
	switch e.opts.Colors {
	case ColorRGB:
		return "rgb(" + strconv.Itoa(c.R) + ", " + strconv.Itoa(c.G) + ", " + strconv.Itoa(c.B) + ")"
	case ColorHSL:
		h, s, l := c.HSL()
		return "hsl(" + formatFloat(h) + ", " + formatFloat(s*100) + "%, " + formatFloat(l*100) + "%)"
	}
	return "#" + collapseHex(toHex(c))
}

// collapseHex shortens a six-digit hex string to three digits when it
// matches the RRGGBB pattern with R=R, G=G, B=B.
func collapseHex(hex string) string {
	if len(hex) == 6 && hex[0] == hex[1] && hex[2] == hex[3] && hex[4] == hex[5] {
		return string([]byte{hex[0], hex[2], hex[4]})
	}
	return hex
}

func hexToColor(hex string) value.Color {
	expand := hex
	if len(hex) == 3 {
		expand = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(expand) != 6 {
		return value.Color{A: 255, Format: value.FormatHex}
	}
	return value.Color{
		R: hexByte(expand[0:2]), G: hexByte(expand[2:4]), B: hexByte(expand[4:6]),
		A: 255, Format: value.FormatHex,
	}
}

func hexByte(s string) int {
	n := 0
	for _, c := range s {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n += int(c-'A') + 10
		}
	}
	return n
}

const hexDigits = "0123456789abcdef"

func toHex(c value.Color) string {
	return string([]byte{
		hexDigits[clamp255(c.R)/16], hexDigits[clamp255(c.R)%16],
		hexDigits[clamp255(c.G)/16], hexDigits[clamp255(c.G)%16],
		hexDigits[clamp255(c.B)/16], hexDigits[clamp255(c.B)%16],
	})
}

func clamp255(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
