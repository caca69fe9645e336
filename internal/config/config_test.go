package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csspp/csspp/internal/config"
)

func TestDefaults(t *testing.T) {
	d := config.Defaults()
	require.True(t, d.EnableImports)
	require.True(t, d.EnableFlatten)
	require.True(t, d.EnableSolve)
	require.True(t, d.CurfileRelativeImports)
	require.True(t, d.ToplevelRelativeImports)
}

func TestParseINIOverridesDefaults(t *testing.T) {
	src := `
# comment
[general]
enable_solve=no
dest-encoding = iso-8859-1
`
	overlay, err := config.ParseINI(strings.NewReader(src))
	require.NoError(t, err)

	opts := overlay.Apply(config.Defaults())
	require.False(t, opts.EnableSolve)
	require.Equal(t, "iso-8859-1", opts.DestEncoding)
	require.True(t, opts.EnableFlatten) // untouched default survives
}

func TestParseINIRejectsMissingEquals(t *testing.T) {
	_, err := config.ParseINI(strings.NewReader("not-a-kv-pair"))
	require.Error(t, err)
}

func TestParseINIRejectsUnknownKey(t *testing.T) {
	_, err := config.ParseINI(strings.NewReader("bogus_key=1"))
	require.Error(t, err)
}

func TestParseINIRejectsInvalidBoolean(t *testing.T) {
	_, err := config.ParseINI(strings.NewReader("enable_solve=maybe"))
	require.Error(t, err)
}

func TestMergePrecedenceCLIOverFileOverDefault(t *testing.T) {
	falseVal := false
	trueVal := true
	file := config.Overlay{EnableSolve: &falseVal}
	cli := config.Overlay{EnableSolve: &trueVal}

	opts := config.Merge(file, cli)
	require.True(t, opts.EnableSolve, "cli overlay must win over file overlay")
}

func TestMergeFileWinsOverDefaultWhenCLIUnset(t *testing.T) {
	falseVal := false
	file := config.Overlay{EnableFlatten: &falseVal}
	opts := config.Merge(file, config.Overlay{})
	require.False(t, opts.EnableFlatten)
}
