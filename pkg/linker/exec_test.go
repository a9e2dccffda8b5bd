// TEST TYPE: Integration Test
// DEPENDENCIES: /bin/sh
// PURPOSE: Test linker subprocess handling

package linker_test

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/stowsave/pkg/linker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExec_Success(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	l := linker.NewExec("sh", []string{"-c", `pwd; echo "pkg=$0"`})
	result, err := l.Invoke(dir, []string{"scripts"})
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, dir)
	assert.Contains(t, result.Stdout, "pkg=scripts")
	assert.True(t, strings.HasSuffix(result.Command, " scripts"), "package name is the last argument")
}

func TestExec_NonZeroExit(t *testing.T) {
	requireShell(t)

	l := linker.NewExec("sh", []string{"-c", "echo 'conflict: proj/script' >&2; exit 3"})
	result, err := l.Invoke(t.TempDir(), []string{"scripts"})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "conflict: proj/script\n", result.Stderr)
}

func TestExec_MissingBinary(t *testing.T) {
	l := linker.NewExec("stowsave-no-such-linker", nil)
	result, err := l.Invoke(t.TempDir(), []string{"scripts"})

	assert.Error(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, "stowsave-no-such-linker scripts", result.Command)
}

func TestExec_MissingWorkingDir(t *testing.T) {
	l := linker.NewExec("sh", nil)
	_, err := l.Invoke(filepath.Join(t.TempDir(), "nope"), []string{"scripts"})
	assert.Error(t, err)
}

func TestNewExec_DefaultsToStow(t *testing.T) {
	assert.Equal(t, "stow", linker.NewExec("", nil).Command())
}

func TestExec_RealStow(t *testing.T) {
	if _, err := exec.LookPath("stow"); err != nil {
		t.Skip("stow not installed")
	}

	root := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	stowDir := filepath.Join(root, "dotfiles")
	require.NoError(t, mkdirFile(filepath.Join(stowDir, "pkg", "proj"), "script", "echo hi"))

	result, err := linker.NewExec("stow", nil).Invoke(stowDir, []string{"pkg"})
	require.NoError(t, err)
	require.True(t, result.Success(), result.Stderr)

	target, err := filepath.EvalSymlinks(filepath.Join(root, "proj", "script"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stowDir, "pkg", "proj", "script"), target)
}
