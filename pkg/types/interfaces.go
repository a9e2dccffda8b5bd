package types

import (
	"io/fs"
)

// FS is the filesystem interface required for stowsave operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat must not follow a trailing symlink. Implementations that cannot
	// represent symlinks may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// LinkerResult holds what the linking tool reported for one invocation
type LinkerResult struct {
	// Command is the command line that ran, for messages
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the tool exited with status zero
func (r LinkerResult) Success() bool {
	return r.ExitCode == 0
}

// Linker runs the external symlink-farm tool.
//
// Invoke blocks until the tool exits. A non-zero exit is reported through
// the result, not the error; the error is reserved for failing to run the
// tool at all.
type Linker interface {
	Invoke(workingDir string, args []string) (LinkerResult, error)
}
