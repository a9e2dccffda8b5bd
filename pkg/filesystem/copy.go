package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/types"
)

// Copy duplicates src at dst. A regular file is copied byte for byte with
// its permission bits. A directory is copied recursively; symlinks found
// inside it are recreated as symlinks rather than followed. src itself must
// be a regular file or a directory, and dst must not exist yet.
func Copy(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", src)
	}

	if err := ensureAbsent(fsys, dst); err != nil {
		return err
	}

	switch {
	case info.Mode().IsRegular():
		return copyFile(fsys, src, dst, info.Mode().Perm())
	case info.IsDir():
		return copyDir(fsys, src, dst, info.Mode().Perm())
	default:
		return errors.Newf(errors.ErrIO, "Path '%s' is not a file or directory", src)
	}
}

func ensureAbsent(fsys types.FS, path string) error {
	_, err := fsys.Lstat(path)
	if err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "Path '%s' already exists", path)
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", path)
	}
	return nil
}

func copyFile(fsys types.FS, src, dst string, perm fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read '%s'", src)
	}
	if err := fsys.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write '%s'", dst)
	}
	// WriteFile is subject to the umask.
	if err := fsys.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to set mode on '%s'", dst)
	}
	return nil
}

func copyDir(fsys types.FS, src, dst string, perm fs.FileMode) error {
	// Created writable so read-only sources can still be filled; the real
	// mode is applied once the contents are in place.
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read directory '%s'", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := fsys.Lstat(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to stat '%s'", srcPath)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := fsys.Readlink(srcPath)
			if err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to read link '%s'", srcPath)
			}
			if err := fsys.Symlink(target, dstPath); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create link '%s'", dstPath)
			}
		case info.IsDir():
			if err := copyDir(fsys, srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(fsys, srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			return errors.Newf(errors.ErrIO, "Path '%s' is not a file, directory or symlink", srcPath)
		}
	}

	if err := fsys.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to set mode on '%s'", dst)
	}
	return nil
}
