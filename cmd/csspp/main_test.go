package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlagBoolVocabulary(t *testing.T) {
	for _, s := range []string{"yes", "enable", "true"} {
		v, err := parseFlagBool(s)
		require.NoError(t, err)
		require.NotNil(t, v)
		require.True(t, *v)
	}
	for _, s := range []string{"no", "disable", "false"} {
		v, err := parseFlagBool(s)
		require.NoError(t, err)
		require.NotNil(t, v)
		require.False(t, *v)
	}
}

func TestParseFlagBoolEmptyIsUnset(t *testing.T) {
	v, err := parseFlagBool("")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestParseFlagBoolRejectsGarbage(t *testing.T) {
	_, err := parseFlagBool("maybe")
	require.Error(t, err)
}

func TestCliOverlayFromFlagsSetsOnlyProvided(t *testing.T) {
	o, err := cliOverlayFromFlags("", "", "iso-8859-1", "no", "", "", "", "")
	require.NoError(t, err)
	require.Nil(t, o.DefaultEncoding)
	require.NotNil(t, o.DestEncoding)
	require.Equal(t, "iso-8859-1", *o.DestEncoding)
	require.NotNil(t, o.EnableImports)
	require.False(t, *o.EnableImports)
	require.Nil(t, o.EnableFlatten)
}

func TestResolveOptionsMergesDefaultsWhenNoFlags(t *testing.T) {
	opts, err := resolveOptions("", "", "", "", "", "", "", "", "")
	require.NoError(t, err)
	require.True(t, opts.EnableSolve)
	require.True(t, opts.EnableFlatten)
}

func TestResolveOptionsAppliesCLIOverlay(t *testing.T) {
	opts, err := resolveOptions("", "", "", "", "", "no", "", "", "")
	require.NoError(t, err)
	require.False(t, opts.EnableFlatten)
}
