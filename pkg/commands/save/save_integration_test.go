// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem (t.TempDir), optionally GNU stow
// PURPOSE: Test saving files and directories on disk

package save_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stowsave/pkg/commands/save"
	serrors "github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/linker"
	"github.com/arthur-debert/stowsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFile_OnDisk(t *testing.T) {
	home, packageDir := testutil.StowTree(t, "scripts")
	source := testutil.CreateFile(t, home, "proj/script", "echo hi\n")
	require.NoError(t, os.Chmod(source, 0755))
	dest := filepath.Join(packageDir, "proj", "script")

	fake := &testutil.RecordingLinker{}
	fake.OnInvoke = func(workingDir string, args []string) {
		require.NoError(t, os.Symlink("../dotfiles/scripts/proj/script", source))
	}

	_, err := save.SaveFile(save.SaveOptions{
		SavePath:     source,
		PackageDir:   packageDir,
		VerifyBackup: true,
		VerifyLink:   true,
		Linker:       fake,
	})
	require.NoError(t, err)

	testutil.AssertFileContent(t, dest, "echo hi\n")
	testutil.AssertFileContent(t, source+".bak", "echo hi\n")
	testutil.AssertSymlink(t, source, "../dotfiles/scripts/proj/script")

	info, err := os.Stat(source + ".bak")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestSaveFile_OnDiskDirectory(t *testing.T) {
	home, packageDir := testutil.StowTree(t, "nvim")
	testutil.CreateFile(t, home, ".config/nvim/init.lua", "-- init")
	testutil.CreateFile(t, home, ".config/nvim/lua/plugins.lua", "return {}")

	_, err := save.SaveFile(save.SaveOptions{
		SavePath:     filepath.Join(home, ".config", "nvim"),
		PackageDir:   packageDir,
		VerifyBackup: true,
		Linker:       &testutil.RecordingLinker{},
	})
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(home, ".config", "nvim.bak", "lua", "plugins.lua"), "return {}")
	testutil.AssertFileContent(t, filepath.Join(packageDir, ".config", "nvim", "init.lua"), "-- init")
	testutil.AssertNoFile(t, filepath.Join(home, ".config", "nvim"))
}

func TestSaveFile_RelativeArguments(t *testing.T) {
	home, packageDir := testutil.StowTree(t, "bash")
	testutil.CreateFile(t, home, ".bashrc", "x")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	defer func() { _ = os.Chdir(wd) }()

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:   ".bashrc",
		PackageDir: "dotfiles/bash",
		Linker:     &testutil.RecordingLinker{},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(packageDir, ".bashrc"), result.Placement.Destination)
}

func TestSaveFile_OnDiskSymlinkRejected(t *testing.T) {
	home, packageDir := testutil.StowTree(t, "pkg")
	target := testutil.CreateFile(t, home, "real", "x")
	link := filepath.Join(home, "link")
	testutil.CreateSymlink(t, target, link)

	_, err := save.SaveFile(save.SaveOptions{
		SavePath:   link,
		PackageDir: packageDir,
		Linker:     &testutil.RecordingLinker{},
	})
	assert.Equal(t, serrors.ErrIsSymlink, serrors.GetErrorCode(err))
	assert.True(t, testutil.SymlinkExists(t, link))
}

func TestSaveFile_WithRealStow(t *testing.T) {
	if _, err := exec.LookPath("stow"); err != nil {
		t.Skip("stow not installed")
	}

	home, packageDir := testutil.StowTree(t, "scripts")
	source := testutil.CreateFile(t, home, "proj/script", "echo hi\n")

	_, err := save.SaveFile(save.SaveOptions{
		SavePath:   source,
		PackageDir: packageDir,
		VerifyLink: true,
		Linker:     linker.NewExec("stow", nil),
	})
	require.NoError(t, err)

	testutil.AssertFileContent(t, source, "echo hi\n")
	assert.True(t, testutil.SymlinkExists(t, source))
}
