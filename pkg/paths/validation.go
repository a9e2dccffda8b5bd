package paths

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/types"
)

// ValidatePath performs basic sanity checks on user supplied paths.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// maxLinkHops bounds symlink expansion, matching the usual ELOOP limit
const maxLinkHops = 40

// Resolve makes path absolute and clean, and resolves symlinks in its parent
// directories through fsys. The last component is left alone so the
// reconciler can still tell that the path itself is a symlink. A path whose
// parent cannot be resolved is returned absolute but otherwise untouched; the
// reconciler's existence check reports it later.
func Resolve(fsys types.FS, path string) (string, error) {
	abs, err := absolute(path)
	if err != nil {
		return "", err
	}
	if abs == Root {
		return abs, nil
	}

	dir, err := EvalSymlinks(fsys, filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// ResolveDir makes path absolute and resolves every symlink in it through
// fsys, including the last component. A path that cannot be resolved is
// returned absolute and unresolved.
func ResolveDir(fsys types.FS, path string) (string, error) {
	abs, err := absolute(path)
	if err != nil {
		return "", err
	}

	resolved, err := EvalSymlinks(fsys, abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// EvalSymlinks is filepath.EvalSymlinks for an absolute path, reading link
// metadata through fsys instead of the host filesystem. Every component
// must exist.
func EvalSymlinks(fsys types.FS, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", errors.Newf(errors.ErrInvalidInput, "path must be absolute: %s", path)
	}

	resolved := Root
	pending := Components(path)
	hops := 0

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := fsys.Lstat(next)
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		hops++
		if hops > maxLinkHops {
			return "", errors.Newf(errors.ErrIO, "too many levels of symbolic links: %s", path)
		}

		target, err := fsys.Readlink(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			resolved = Root
		}
		pending = append(strings.Split(filepath.Clean(target), string(filepath.Separator)), pending...)
	}

	return resolved, nil
}

func absolute(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for '%s'", path)
	}
	return abs, nil
}
