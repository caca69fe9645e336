package source_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/internal/source"
)

func TestReadPlainUTF8DefaultsToUTF8(t *testing.T) {
	res, err := source.Read([]byte("a { color: red; }"), source.Options{})
	require.NoError(t, err)
	require.Equal(t, "a { color: red; }", res.Text)
	require.Equal(t, "utf-8", res.Encoding)
	require.False(t, res.Sniffed)
}

func TestReadStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a { color: red; }")...)
	res, err := source.Read(data, source.Options{})
	require.NoError(t, err)
	require.Equal(t, "a { color: red; }", res.Text)
	require.Equal(t, "utf-8", res.Encoding)
	require.True(t, res.Sniffed)
}

func TestReadSniffsEmbeddedCharsetASCII(t *testing.T) {
	data := []byte(`@charset "utf-8"; a { color: red; }`)
	res, err := source.Read(data, source.Options{})
	require.NoError(t, err)
	require.Equal(t, "utf-8", res.Encoding)
	require.True(t, res.Sniffed)
	require.Contains(t, res.Text, `@charset "utf-8";`)
}

func TestReadExplicitSourceEncodingSkipsSniffing(t *testing.T) {
	data := []byte(`@charset "utf-16"; a { color: red; }`)
	res, err := source.Read(data, source.Options{SourceEncoding: "utf-8"})
	require.NoError(t, err)
	require.False(t, res.Sniffed)
	require.Equal(t, "utf-8", res.Encoding)
}

func TestReadUnknownExplicitEncodingErrors(t *testing.T) {
	_, err := source.Read([]byte("a {}"), source.Options{SourceEncoding: "bogus-encoding-name"})
	require.Error(t, err)
}

func TestReadUsesDefaultEncodingWhenNoSniffMatch(t *testing.T) {
	res, err := source.Read([]byte("a { color: red; }"), source.Options{DefaultEncoding: "iso-8859-1"})
	require.NoError(t, err)
	require.Equal(t, "iso-8859-1", res.Encoding)
}

func TestEncodeOutputUTF8PassesThrough(t *testing.T) {
	out, err := source.EncodeOutput("a { color: red; }", "")
	require.NoError(t, err)
	require.Equal(t, "a { color: red; }", string(out))
}

func TestEncodeOutputUnrepresentableRuneEscapes(t *testing.T) {
	out, err := source.EncodeOutput("content: \"☃\";", "iso-8859-1")
	require.NoError(t, err)
	require.Contains(t, string(out), `\002603`)
}
