package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/lexer"
	"github.com/csspp/csspp/token"
)

func kinds(src string) []token.Kind {
	l := lexer.New("test.csspp", src)
	var out []token.Kind
	for {
		tok := l.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestLexerBasics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []token.Kind{token.EOF},
		},
		{
			name:  "simple rule",
			input: "body { color: red; }",
			expected: []token.Kind{
				token.Ident, token.Whitespace, token.LBrace, token.Whitespace,
				token.Ident, token.Colon, token.Whitespace, token.Ident, token.Semicolon,
				token.Whitespace, token.RBrace, token.EOF,
			},
		},
		{
			name:  "variable definition",
			input: "$primary: #fff;",
			expected: []token.Kind{
				token.Ident, token.Colon, token.Whitespace, token.Hash, token.Semicolon, token.EOF,
			},
		},
		{
			name:  "block comment",
			input: "/* hi */ body {}",
			expected: []token.Kind{
				token.Comment, token.Whitespace, token.Ident, token.Whitespace,
				token.LBrace, token.RBrace, token.EOF,
			},
		},
		{
			name:  "dimension and percentage",
			input: "10px 50%",
			expected: []token.Kind{
				token.Dimension, token.Whitespace, token.Percentage, token.EOF,
			},
		},
		{
			name:  "function call",
			input: "rgb(1, 2, 3)",
			expected: []token.Kind{
				token.Function, token.Number, token.Comma, token.Whitespace,
				token.Number, token.Comma, token.Whitespace, token.Number, token.RParen, token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, kinds(tt.input))
		})
	}
}

func TestLexerVariableIdentPreservesDollarPrefix(t *testing.T) {
	l := lexer.New("test.csspp", "$color")
	tok := l.Next()
	require.Equal(t, token.Ident, tok.Kind)
	require.Equal(t, "$color", tok.Value)
}

func TestLexerPutbackRestoresOrder(t *testing.T) {
	l := lexer.New("test.csspp", "a b")
	first := l.NextSignificant()
	require.Equal(t, "a", first.Text)
	l.Putback(first)
	replayed := l.NextSignificant()
	require.Equal(t, first, replayed)
	second := l.NextSignificant()
	require.Equal(t, "b", second.Text)
}

func TestLexerUnterminatedStringIsBad(t *testing.T) {
	l := lexer.New("test.csspp", `"unterminated`)
	tok := l.Next()
	require.Equal(t, token.BadString, tok.Kind)
}

func TestLexerHexEscapeInIdent(t *testing.T) {
	l := lexer.New("test.csspp", `\41 body`)
	tok := l.NextSignificant()
	require.Equal(t, token.Ident, tok.Kind)
	require.Equal(t, "Abody", tok.Value)
}

func TestLexerNotFunctionToken(t *testing.T) {
	l := lexer.New("test.csspp", ":not(.foo)")
	tok := l.Next()
	require.Equal(t, token.NotFunction, tok.Kind)
}
