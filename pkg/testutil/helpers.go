package testutil

import (
	"path/filepath"
	"testing"
)

// MemFile writes a file into the in-memory filesystem, creating parents.
func MemFile(t *testing.T, fsys *MemoryFS, path, content string) string {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// MemDir creates a directory, and its parents, in the in-memory filesystem.
func MemDir(t *testing.T, fsys *MemoryFS, path string) string {
	t.Helper()

	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// MemSymlink creates link -> target in the in-memory filesystem.
func MemSymlink(t *testing.T, fsys *MemoryFS, target, link string) string {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}
	if err := fsys.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
	return link
}

// HomeWithPackage builds /home/u with a /home/u/dotfiles/<pkg> package in
// memory and returns the filesystem along with the package directory.
func HomeWithPackage(t *testing.T, pkg string) (*MemoryFS, string) {
	t.Helper()

	fsys := NewMemoryFS()
	packageDir := MemDir(t, fsys, filepath.Join("/home/u/dotfiles", pkg))
	return fsys, packageDir
}
