// Package lexer tokenizes a decoded character sequence into the token
// vocabulary of package token. It is grounded on the byte-scanning style of
// titpetric/lessgo's parser.Lexer (peek/peekAhead/advance, position
// tracking through a rune-by-rune walk) generalized to the CSS-superset
// token families and an unbounded putback buffer.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/csspp/csspp/token"
)

// Lexer tokenizes src, recognizing comments as a distinct (normally
// skipped) kind, and supports unbounded Putback so a parser can
// speculatively consume and then restore tokens.
type Lexer struct {
	filename string
	src      []rune
	pos      int
	line     int
	column   int

	putback []token.Token // stack, back() is next to be returned
}

// New constructs a Lexer over src, attributing positions to filename.
func New(filename, src string) *Lexer {
	return &Lexer{
		filename: filename,
		src:      []rune(src),
		pos:      0,
		line:     1,
		column:   1,
	}
}

// Putback pushes tok back so the next Next/Peek call returns it before
// resuming the underlying scan. Multiple pushes stack LIFO.
func (l *Lexer) Putback(tok token.Token) {
	l.putback = append(l.putback, tok)
}

// Next returns the next token of any kind. Comments and whitespace ARE
// returned (callers that want to skip them call NextSignificant).
func (l *Lexer) Next() token.Token {
	if n := len(l.putback); n > 0 {
		tok := l.putback[n-1]
		l.putback = l.putback[:n-1]
		return tok
	}
	return l.scan()
}

// NextSignificant returns the next token, skipping COMMENT and
// WHITESPACE kinds. Most parser call sites want this.
func (l *Lexer) NextSignificant() token.Token {
	tok, _ := l.NextSignificantWS()
	return tok
}

// NextSignificantWS is like NextSignificant but also reports whether any
// whitespace or comment was skipped immediately before the returned
// token. The parser's unary-vs-binary-minus and descendant-combinator
// disambiguation rules need that adjacency fact, which NextSignificant
// alone discards.
func (l *Lexer) NextSignificantWS() (token.Token, bool) {
	skipped := false
	for {
		tok := l.Next()
		if tok.Kind == token.Comment || tok.Kind == token.Whitespace {
			skipped = true
			continue
		}
		return tok, skipped
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() rune {
	if l.eof() {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) mk(kind token.Kind, startLine, startCol int, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Value: text, Line: startLine, Column: startCol, Filename: l.filename}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 0x7F
}

func isNameChar(r rune) bool {
	return isNameStart(r) || isDigit(r) || r == '-'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// scan recognizes exactly one token starting at the current position,
// applying longest-match-wins: compound tokens (URI, :not(, match
// operators, functions, DIMENSION, PERCENTAGE) are tried before their
// single-character/prefix forms.
func (l *Lexer) scan() token.Token {
	startLine, startCol := l.line, l.column

	if l.eof() {
		return l.mk(token.EOF, startLine, startCol, "")
	}

	r := l.peek()

	switch {
	case isWhitespace(r):
		return l.scanWhitespace(startLine, startCol)
	case r == '/' && l.peekAt(1) == '*':
		return l.scanComment(startLine, startCol)
	case r == '"' || r == '\'':
		return l.scanString(startLine, startCol)
	case r == '#':
		return l.scanHash(startLine, startCol)
	case r == '@':
		return l.scanAtKeyword(startLine, startCol)
	case r == '<' && l.peekAt(1) == '!' && l.peekAt(2) == '-' && l.peekAt(3) == '-':
		l.advance()
		l.advance()
		l.advance()
		l.advance()
		return l.mk(token.CDO, startLine, startCol, "<!--")
	case r == '-' && l.peekAt(1) == '-' && l.peekAt(2) == '>':
		l.advance()
		l.advance()
		l.advance()
		return l.mk(token.CDC, startLine, startCol, "-->")
	case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
		return l.scanNumeric(startLine, startCol)
	case isNameStart(r) || r == '\\':
		return l.scanIdentLike(startLine, startCol)
	case r == '$' && (isNameStart(l.peekAt(1)) || l.peekAt(1) == '\\'):
		return l.scanIdentLike(startLine, startCol)
	}

	return l.scanPunct(startLine, startCol)
}

func (l *Lexer) scanWhitespace(line, col int) token.Token {
	var b strings.Builder
	for !l.eof() && isWhitespace(l.peek()) {
		b.WriteRune(l.advance())
	}
	return l.mk(token.Whitespace, line, col, b.String())
}

func (l *Lexer) scanComment(line, col int) token.Token {
	var b strings.Builder
	b.WriteRune(l.advance()) // /
	b.WriteRune(l.advance()) // *
	closed := false
	for !l.eof() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			b.WriteRune(l.advance())
			b.WriteRune(l.advance())
			closed = true
			break
		}
		b.WriteRune(l.advance())
	}
	if !closed {
		return l.mk(token.BadComment, line, col, b.String())
	}
	return l.mk(token.Comment, line, col, b.String())
}

// scanEscape consumes a CSS escape sequence starting at the backslash and
// returns the rune it denotes (or the literal next character for a
// non-hex escape). Assumes the current rune is '\\'.
func (l *Lexer) scanEscape() rune {
	l.advance() // backslash
	if l.eof() {
		return utf8.RuneError
	}
	if isHexDigit(l.peek()) {
		var hex strings.Builder
		for i := 0; i < 6 && isHexDigit(l.peek()); i++ {
			hex.WriteRune(l.advance())
		}
		if isWhitespace(l.peek()) {
			l.advance()
		}
		var code rune
		for _, c := range hex.String() {
			code = code*16 + hexVal(c)
		}
		return code
	}
	return l.advance()
}

func hexVal(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10
	}
	return 0
}

func (l *Lexer) scanString(line, col int) token.Token {
	quote := l.advance()
	var raw strings.Builder
	var val strings.Builder
	raw.WriteRune(quote)
	closed := false
	for !l.eof() {
		r := l.peek()
		if r == quote {
			raw.WriteRune(l.advance())
			closed = true
			break
		}
		if r == '\n' {
			// unescaped newline terminates the string as bad.
			break
		}
		if r == '\\' {
			if l.peekAt(1) == '\n' {
				raw.WriteRune(l.advance())
				raw.WriteRune(l.advance())
				continue
			}
			before := l.pos
			decoded := l.scanEscape()
			raw.WriteString(string(l.src[before:l.pos]))
			val.WriteRune(decoded)
			continue
		}
		raw.WriteRune(r)
		val.WriteRune(r)
		l.advance()
	}
	tok := l.mk(token.String, line, col, raw.String())
	tok.Value = val.String()
	if !closed {
		tok.Kind = token.BadString
	}
	return tok
}

func (l *Lexer) scanHash(line, col int) token.Token {
	l.advance() // #
	var b strings.Builder
	for !l.eof() && (isNameChar(l.peek()) || l.peek() == '\\') {
		if l.peek() == '\\' {
			before := l.pos
			l.scanEscape()
			b.WriteString(string(l.src[before:l.pos]))
			continue
		}
		b.WriteRune(l.advance())
	}
	return l.mk(token.Hash, line, col, "#"+b.String())
}

func (l *Lexer) scanAtKeyword(line, col int) token.Token {
	l.advance() // @
	var b strings.Builder
	for !l.eof() && (isNameChar(l.peek()) || l.peek() == '\\') {
		if l.peek() == '\\' {
			before := l.pos
			l.scanEscape()
			b.WriteString(string(l.src[before:l.pos]))
			continue
		}
		b.WriteRune(l.advance())
	}
	name := b.String()
	kind := token.AtOther
	switch strings.ToLower(name) {
	case "charset":
		kind = token.AtCharset
	case "import":
		kind = token.AtImport
	case "media":
		kind = token.AtMedia
	case "page":
		kind = token.AtPage
	}
	return l.mk(kind, line, col, "@"+name)
}

func (l *Lexer) scanNumeric(line, col int) token.Token {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekAt(1)) || ((l.peekAt(1) == '+' || l.peekAt(1) == '-') && isDigit(l.peekAt(2)))) {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	numText := string(l.src[start:l.pos])
	num := parseFloat(numText)

	if l.peek() == '%' {
		l.advance()
		tok := l.mk(token.Percentage, line, col, numText+"%")
		tok.Num = num
		return tok
	}
	if isNameStart(l.peek()) || l.peek() == '\\' {
		unitStart := l.pos
		var unit strings.Builder
		for !l.eof() && (isNameChar(l.peek()) || l.peek() == '\\') {
			if l.peek() == '\\' {
				before := l.pos
				unit.WriteRune(l.scanEscape())
				_ = before
				continue
			}
			unit.WriteRune(l.advance())
		}
		unitText := string(l.src[unitStart:l.pos])
		_ = unitText
		tok := l.mk(token.Dimension, line, col, numText+unit.String())
		tok.Num = num
		tok.Unit = strings.ToLower(unit.String())
		return tok
	}
	tok := l.mk(token.Number, line, col, numText)
	tok.Num = num
	return tok
}

func parseFloat(s string) float64 {
	var neg bool
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var n float64
	var frac float64 = 1
	seenDot := false
	for _, c := range s {
		switch {
		case c == '.':
			seenDot = true
		case c >= '0' && c <= '9':
			if seenDot {
				frac /= 10
				n += float64(c-'0') * frac
			} else {
				n = n*10 + float64(c-'0')
			}
		}
	}
	if neg {
		n = -n
	}
	return n
}

// scanIdentLike handles IDENT, FUNCTION, URI, and ":not(" since they all
// start with a name or a backslash escape, and must be disambiguated by
// what follows the name (an immediate '(' makes it a FUNCTION, and the
// literal name "url" followed by '(' is further special-cased into URI).
func (l *Lexer) scanIdentLike(line, col int) token.Token {
	start := l.pos
	var b strings.Builder
	if l.peek() == '$' {
		// variable name: '$' followed by an identifier. Consumed as a
		// single Ident token whose Value keeps the '$' prefix, so the
		// parser's isVarName can recognize it.
		b.WriteRune(l.advance())
	}
	for !l.eof() && (isNameChar(l.peek()) || l.peek() == '\\') {
		if l.peek() == '\\' {
			before := l.pos
			r := l.scanEscape()
			b.WriteRune(r)
			_ = before
			continue
		}
		b.WriteRune(l.advance())
	}
	name := b.String()
	_ = start

	if l.peek() == '(' {
		if strings.EqualFold(name, "url") {
			return l.scanURI(line, col)
		}
		l.advance()
		return l.mk(token.Function, line, col, name+"(")
	}
	tok := l.mk(token.Ident, line, col, name)
	tok.Value = name
	return tok
}

func (l *Lexer) scanURI(line, col int) token.Token {
	raw := &strings.Builder{}
	raw.WriteString("url(")
	l.advance() // (
	for !l.eof() && isWhitespace(l.peek()) {
		raw.WriteRune(l.advance())
	}
	if l.peek() == '"' || l.peek() == '\'' {
		str := l.scanString(line, col)
		raw.WriteString(str.Text)
		for !l.eof() && isWhitespace(l.peek()) {
			raw.WriteRune(l.advance())
		}
		if l.peek() != ')' {
			return token.Token{Kind: token.BadURI, Text: raw.String(), Line: line, Column: col, Filename: l.filename}
		}
		l.advance()
		raw.WriteByte(')')
		tok := l.mk(token.URI, line, col, raw.String())
		tok.Value = str.Value
		return tok
	}
	var val strings.Builder
	closed := false
	for !l.eof() {
		r := l.peek()
		if r == ')' {
			l.advance()
			closed = true
			break
		}
		if isWhitespace(r) {
			raw.WriteRune(l.advance())
			for !l.eof() && isWhitespace(l.peek()) {
				raw.WriteRune(l.advance())
			}
			if l.peek() == ')' {
				l.advance()
				closed = true
			}
			break
		}
		if r == '\\' {
			before := l.pos
			d := l.scanEscape()
			raw.WriteString(string(l.src[before:l.pos]))
			val.WriteRune(d)
			continue
		}
		raw.WriteRune(r)
		val.WriteRune(r)
		l.advance()
	}
	if closed {
		raw.WriteByte(')')
	}
	tok := l.mk(token.URI, line, col, raw.String())
	tok.Value = val.String()
	if !closed {
		tok.Kind = token.BadURI
	}
	return tok
}

func (l *Lexer) scanPunct(line, col int) token.Token {
	r := l.advance()
	two := func(next rune, k token.Kind, text string) (token.Token, bool) {
		if l.peek() == next {
			l.advance()
			return l.mk(k, line, col, text), true
		}
		return token.Token{}, false
	}

	switch r {
	case ':':
		if l.peek() == ':' {
			l.advance()
			return l.mk(token.DoubleColon, line, col, "::")
		}
		if l.peek() == 'n' || l.peek() == 'N' {
			if strings.EqualFold(l.peekSeq(3), "not") && l.peekAt(3) == '(' {
				for i := 0; i < 4; i++ {
					l.advance()
				}
				return l.mk(token.NotFunction, line, col, ":not(")
			}
		}
		return l.mk(token.Colon, line, col, ":")
	case '~':
		if tok, ok := two('=', token.Includes, "~="); ok {
			return tok
		}
		return l.mk(token.Tilde, line, col, "~")
	case '|':
		if tok, ok := two('=', token.DashMatch, "|="); ok {
			return tok
		}
		return l.mk(token.Pipe, line, col, "|")
	case '^':
		if tok, ok := two('=', token.PrefixMatch, "^="); ok {
			return tok
		}
		return l.mk(token.Caret, line, col, "^")
	case '$':
		if tok, ok := two('=', token.SuffixMatch, "$="); ok {
			return tok
		}
		return l.mk(token.Error, line, col, "$")
	case '*':
		if tok, ok := two('=', token.SubstrMatch, "*="); ok {
			return tok
		}
		return l.mk(token.Star, line, col, "*")
	case '{':
		return l.mk(token.LBrace, line, col, "{")
	case '}':
		return l.mk(token.RBrace, line, col, "}")
	case '(':
		return l.mk(token.LParen, line, col, "(")
	case ')':
		return l.mk(token.RParen, line, col, ")")
	case '[':
		return l.mk(token.LBracket, line, col, "[")
	case ']':
		return l.mk(token.RBracket, line, col, "]")
	case ',':
		return l.mk(token.Comma, line, col, ",")
	case ';':
		return l.mk(token.Semicolon, line, col, ";")
	case '.':
		return l.mk(token.Dot, line, col, ".")
	case '+':
		return l.mk(token.Plus, line, col, "+")
	case '-':
		return l.mk(token.Minus, line, col, "-")
	case '/':
		return l.mk(token.Slash, line, col, "/")
	case '!':
		return l.mk(token.Bang, line, col, "!")
	case '=':
		return l.mk(token.Equals, line, col, "=")
	case '&':
		return l.mk(token.Ampersand, line, col, "&")
	case '<':
		return l.mk(token.Less, line, col, "<")
	case '>':
		return l.mk(token.Greater, line, col, ">")
	}
	return l.mk(token.Error, line, col, string(r))
}

// peekSeq returns up to n runes ahead as a string without advancing,
// starting at the current position (used for the ":not(" lookahead).
func (l *Lexer) peekSeq(n int) string {
	end := l.pos + n
	if end > len(l.src) {
		end = len(l.src)
	}
	return string(l.src[l.pos:end])
}
