package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	sysEnv := []string{"PATH=/usr/bin", "HOME=/home/dev", "BUILD_MODE=debug", "MALFORMED"}
	buildEnv := []string{"PATH=/opt/tools/bin", "BUILD_MODE=release"}
	cmdEnv := map[string]string{"HOME": "/tmp/home"}

	got := resolveEnvironment(sysEnv, buildEnv, cmdEnv)

	assert.ElementsMatch(t, []string{
		"PATH=/opt/tools/bin" + string(os.PathListSeparator) + "/usr/bin",
		"HOME=/tmp/home",
		"BUILD_MODE=release",
	}, got)
}

func TestResolveEnvironment_PathWithoutSystemPath(t *testing.T) {
	got := resolveEnvironment(nil, []string{"PATH=/opt/tools/bin"}, nil)
	assert.Equal(t, []string{"PATH=/opt/tools/bin"}, got)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "tool")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o600))

	got, err := lookPath("tool", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("plain", []string{"PATH=" + dir})
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = lookPath("tool", []string{"HOME=/"})
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
