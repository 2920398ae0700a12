package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	require.Equal(t, "stdin", displayName("-"))
	require.Equal(t, "main.rn", displayName("main.rn"))
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.rn")
	require.NoError(t, os.WriteFile(path, []byte("local m = {}\nreturn m\n"), 0o644))

	text, err := readSource(path)
	require.NoError(t, err)
	require.Equal(t, "local m = {}\nreturn m\n", text)

	_, err = readSource(filepath.Join(t.TempDir(), "missing.rn"))
	require.Error(t, err)
}

func TestColorDisabledByEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	require.False(t, colorEnabled(os.Stdout))
}

func TestOutputJSONWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out, err := getOutputJSON(map[string]int{"n": 1})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"n\": 1\n}", string(out))
}
