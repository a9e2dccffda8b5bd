package filesystem

import (
	stderrors "errors"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/types"
)

// MoveInto relocates src, file or directory, so that it lives directly
// under destDir with its base name unchanged, and returns the new path.
//
// If destDir already holds an entry with that name nothing is touched and
// an ErrAlreadyExists error is returned. When a plain rename is impossible
// because the two locations are on different devices, the tree is copied
// and the source removed afterwards.
func MoveInto(fsys types.FS, src, destDir string) (string, error) {
	target := filepath.Join(destDir, filepath.Base(src))

	if err := ensureAbsent(fsys, target); err != nil {
		return "", err
	}

	err := fsys.Rename(src, target)
	if err == nil {
		return target, nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to move '%s' to '%s'", src, destDir)
	}

	if err := Copy(fsys, src, target); err != nil {
		return "", err
	}
	if err := fsys.RemoveAll(src); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "copied '%s' to '%s' but failed to remove the original", src, target)
	}
	return target, nil
}
