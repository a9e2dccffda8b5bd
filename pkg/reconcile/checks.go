package reconcile

import (
	"os"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/paths"
	"github.com/arthur-debert/stowsave/pkg/types"
)

// RequiredDepth is how many components the package directory must sit
// below the common ancestor: <ancestor>/<stow dir>/<package>.
const RequiredDepth = 2

// Exists fails with ErrNotFound when nothing is at path. A dangling symlink
// counts as present.
func Exists(fsys types.FS, path string) error {
	if _, err := fsys.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrNotFound, "Path '%s' does not exist", path).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", path)
	}
	return nil
}

// IsNotSymlink fails with ErrIsSymlink when path itself is a symbolic link.
func IsNotSymlink(fsys types.FS, path string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errors.Newf(errors.ErrIsSymlink, "Path '%s' is a symlink. Cannot save symlinks.", path).
			WithDetail("path", path)
	}
	return nil
}

// IsValidContainer fails with ErrInvalidContainer unless path is an
// existing directory.
func IsValidContainer(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrInvalidContainer, "Directory '%s' does not exist or is not a directory", path).
			WithDetail("path", path)
	}
	return nil
}

// TargetIsFree fails with ErrAlreadyExists when something, including a
// dangling symlink, already occupies path.
func TargetIsFree(fsys types.FS, path string) error {
	_, err := fsys.Lstat(path)
	if err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "Path '%s' already exists in the package directory", path).
			WithDetail("path", path)
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", path)
	}
	return nil
}

// AncestorDepthCheck requires container to be exactly RequiredDepth
// components below ancestor. It does not touch the filesystem.
func AncestorDepthCheck(container, ancestor string) error {
	depth, err := paths.DepthBelow(ancestor, container)
	if err != nil || depth != RequiredDepth {
		return errors.New(errors.ErrInvalidContainer, "The package directory must be a grandchild of the common ancestor").
			WithDetail("container", container).
			WithDetail("ancestor", ancestor).
			WithDetail("depth", depth)
	}
	return nil
}
