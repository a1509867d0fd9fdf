package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taker/internal/adapters/shell"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // Test executable
	return path
}

func TestLocator_LookPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeExecutable(t, second, "tool")
	writeExecutable(t, t.TempDir(), "other")

	require.NoError(t, os.WriteFile(filepath.Join(first, "tool"), []byte("data"), 0o600))

	loc := shell.NewLocatorWithPath(first+string(os.PathListSeparator)+second, "")

	got, err := loc.LookPath("tool")
	require.NoError(t, err)
	assert.Equal(t, want, got, "non-executable files are skipped")

	_, err = loc.LookPath("other")
	require.ErrorContains(t, err, "executable file not found")
}

func TestLocator_LookPath_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	exe := writeExecutable(t, dir, "run.sh")

	loc := shell.NewLocatorWithPath("", "")

	got, err := loc.LookPath(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = loc.LookPath(filepath.Join(dir, "missing"))
	require.ErrorContains(t, err, "executable file not found")
}

func TestLocator_LookPath_RelativeToRoot(t *testing.T) {
	root := t.TempDir()
	want := writeExecutable(t, filepath.Join(root, "tools"), "gen")
	binWant := writeExecutable(t, filepath.Join(root, "bin"), "lint")

	t.Chdir(t.TempDir())
	loc := shell.NewLocatorWithPath("bin", root)

	got, err := loc.LookPath(filepath.Join("tools", "gen"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = loc.LookPath("lint")
	require.NoError(t, err)
	assert.Equal(t, binWant, got, "relative PATH entries use the root")
}

func TestLocator_IsBuiltin(t *testing.T) {
	loc := shell.NewLocatorWithPath("", "")

	for _, name := range []string{"cd", "echo", "export", "true", ":"} {
		assert.True(t, loc.IsBuiltin(name), name)
	}
	for _, name := range []string{"g++", "make", "cp"} {
		assert.False(t, loc.IsBuiltin(name), name)
	}
}
