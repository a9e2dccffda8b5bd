// TEST TYPE: Unit Test
// DEPENDENCIES: testutil.MemoryFS, testutil linkers
// PURPOSE: Test save orchestration end to end over an in-memory filesystem

package save_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stowsave/pkg/commands/save"
	serrors "github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/operations"
	"github.com/arthur-debert/stowsave/pkg/reconcile"
	"github.com/arthur-debert/stowsave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeStow creates the one symlink stow would make for the saved entity.
func fakeStow(t *testing.T, fsys *testutil.MemoryFS, link, target string) func(string, []string) {
	return func(string, []string) {
		require.NoError(t, fsys.Symlink(target, link))
	}
}

func TestSaveFile_ConcreteScenario(t *testing.T) {
	fsys, packageDir := testutil.HomeWithPackage(t, "scripts")
	testutil.MemFile(t, fsys, "/home/u/proj/script", "#!/bin/sh\n")

	linker := &testutil.RecordingLinker{FS: fsys}
	linker.OnInvoke = fakeStow(t, fsys, "/home/u/proj/script", "../dotfiles/scripts/proj/script")

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:   "/home/u/proj/script",
		PackageDir: packageDir,
		VerifyLink: true,
		FileSystem: fsys,
		Linker:     linker,
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/u", result.Placement.Ancestor)
	assert.Equal(t, "/home/u/dotfiles/scripts/proj/script", result.Placement.Destination)
	assert.Len(t, result.Results, 4)
	assert.False(t, result.DryRun)

	calls := linker.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/home/u/dotfiles", calls[0].WorkingDir)
	assert.Equal(t, []string{"scripts"}, calls[0].Args)

	data, err := fsys.ReadFile("/home/u/proj/script")
	require.NoError(t, err, "original location readable through the link")
	assert.Equal(t, "#!/bin/sh\n", string(data))

	backup, err := fsys.ReadFile("/home/u/proj/script.bak")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(backup))
}

func TestSaveFile_ResolvesSymlinksThroughInjectedFS(t *testing.T) {
	fsys, _ := testutil.HomeWithPackage(t, "scripts")
	testutil.MemFile(t, fsys, "/home/u/proj/script", "echo hi")
	// only the in-memory filesystem knows this link; followed literally the
	// package would sit one level below /home/u and fail the depth rule
	testutil.MemSymlink(t, fsys, "dotfiles/scripts", "/home/u/pkg")

	linker := &testutil.RecordingLinker{FS: fsys}
	result, err := save.SaveFile(save.SaveOptions{
		SavePath:   "/home/u/proj/script",
		PackageDir: "/home/u/pkg",
		FileSystem: fsys,
		Linker:     linker,
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/u/dotfiles/scripts", result.Placement.PackageDir)
	assert.Equal(t, "/home/u/dotfiles/scripts/proj/script", result.Placement.Destination)

	calls := linker.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/home/u/dotfiles", calls[0].WorkingDir)
	assert.Equal(t, []string{"scripts"}, calls[0].Args)
}

func TestSaveFile_CustomBackupSuffix(t *testing.T) {
	fsys, packageDir := testutil.HomeWithPackage(t, "bash")
	testutil.MemFile(t, fsys, "/home/u/.bashrc", "x")

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:     "/home/u/.bashrc",
		PackageDir:   packageDir,
		BackupSuffix: ".orig",
		FileSystem:   fsys,
		Linker:       &testutil.RecordingLinker{},
	})
	require.NoError(t, err)

	backup := result.Plan.Operations[0].(operations.BackupCopy)
	assert.Equal(t, ".bashrc.orig", backup.BackupName)
	_, err = fsys.Stat("/home/u/.bashrc.orig")
	assert.NoError(t, err)
}

func TestSaveFile_PreconditionFailuresTouchNothing(t *testing.T) {
	tests := []struct {
		name       string
		savePath   string
		packageDir string
		wantCode   serrors.ErrorCode
	}{
		{"missing path", "/home/u/missing", "/home/u/dotfiles/pkg", serrors.ErrNotFound},
		{"symlink", "/home/u/link", "/home/u/dotfiles/pkg", serrors.ErrIsSymlink},
		{"missing package", "/home/u/file", "/home/u/dotfiles/none", serrors.ErrInvalidContainer},
		{"shallow package", "/home/u/file", "/home/u/dotfiles", serrors.ErrInvalidContainer},
		{"empty path", "", "/home/u/dotfiles/pkg", serrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, _ := testutil.HomeWithPackage(t, "pkg")
			testutil.MemFile(t, fsys, "/home/u/file", "x")
			testutil.MemSymlink(t, fsys, "/home/u/file", "/home/u/link")
			before := fsys.Mutations()
			linker := new(testutil.MockLinker)

			result, err := save.SaveFile(save.SaveOptions{
				SavePath:   tt.savePath,
				PackageDir: tt.packageDir,
				FileSystem: fsys,
				Linker:     linker,
			})

			assert.Nil(t, result)
			assert.Equal(t, tt.wantCode, serrors.GetErrorCode(err))
			assert.Equal(t, before, fsys.Mutations())
			linker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
		})
	}
}

func TestSaveFile_DryRun(t *testing.T) {
	fsys, packageDir := testutil.HomeWithPackage(t, "scripts")
	testutil.MemFile(t, fsys, "/home/u/proj/script", "x")
	before := fsys.Mutations()
	linker := new(testutil.MockLinker)

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:   "/home/u/proj/script",
		PackageDir: packageDir,
		DryRun:     true,
		VerifyLink: true,
		FileSystem: fsys,
		Linker:     linker,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Len(t, result.Plan.Operations, 4)
	for _, r := range result.Results {
		assert.True(t, r.Skipped)
	}
	assert.Equal(t, before, fsys.Mutations())
	linker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestSaveFile_VerifyLinkFailsWhenLinkerDidNothing(t *testing.T) {
	fsys, packageDir := testutil.HomeWithPackage(t, "scripts")
	testutil.MemFile(t, fsys, "/home/u/proj/script", "x")

	result, err := save.SaveFile(save.SaveOptions{
		SavePath:   "/home/u/proj/script",
		PackageDir: packageDir,
		VerifyLink: true,
		FileSystem: fsys,
		Linker:     &testutil.RecordingLinker{FS: fsys},
	})

	require.Error(t, err)
	assert.Equal(t, serrors.ErrVerify, serrors.GetErrorCode(err))
	require.NotNil(t, result)
	assert.Len(t, result.Results, 4, "every operation ran before verification")
}

func TestVerifyLink(t *testing.T) {
	fsys, packageDir := testutil.HomeWithPackage(t, "scripts")
	dest := testutil.MemFile(t, fsys, filepath.Join(packageDir, "proj", "script"), "x")
	testutil.MemDir(t, fsys, "/home/u/proj")

	placement := reconcile.Placement{
		SavePath:    "/home/u/proj/script",
		Destination: dest,
	}

	// Nothing at the original location
	assert.Equal(t, serrors.ErrVerify, serrors.GetErrorCode(save.VerifyLink(fsys, placement)))

	// A link pointing elsewhere
	testutil.MemSymlink(t, fsys, "/tmp/elsewhere", "/home/u/proj/script")
	err := save.VerifyLink(fsys, placement)
	assert.Equal(t, serrors.ErrVerify, serrors.GetErrorCode(err))
	assert.Contains(t, err.Error(), "/tmp/elsewhere")

	// A chain of links that ends at the destination
	require.NoError(t, fsys.Remove("/home/u/proj/script"))
	testutil.MemSymlink(t, fsys, "dotfiles/scripts/proj/script", "/home/u/hop")
	testutil.MemSymlink(t, fsys, "../hop", "/home/u/proj/script")
	assert.NoError(t, save.VerifyLink(fsys, placement))
}
