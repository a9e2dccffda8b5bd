package hashutil

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/stowsave/pkg/types"
	"github.com/zeebo/blake3"
)

// CalculateFileChecksum calculates the blake3 checksum of a single file
func CalculateFileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return "blake3:" + hex.EncodeToString(sum[:]), nil
}

// CalculateTreeChecksum digests a file or a whole directory tree. Entry
// names, kinds, permission bits, symlink targets and file contents all feed
// the hash, so two trees share a checksum only when a faithful copy of one
// would produce the other. The root's own name is not included.
func CalculateTreeChecksum(fsys types.FS, root string) (string, error) {
	hasher := blake3.New()
	if err := hashEntry(fsys, hasher, root, "."); err != nil {
		return "", err
	}
	return "blake3:" + hex.EncodeToString(hasher.Sum(nil)), nil
}

func hashEntry(fsys types.FS, hasher *blake3.Hasher, path, rel string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		return err
	}
	mode := info.Mode()

	switch {
	case mode&os.ModeSymlink != 0:
		target, err := fsys.Readlink(path)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(hasher, "L %s %s\x00", rel, target)
	case info.IsDir():
		_, _ = fmt.Fprintf(hasher, "D %s %o\x00", rel, mode.Perm())
		entries, err := fsys.ReadDir(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			if err := hashEntry(fsys, hasher, filepath.Join(path, name), filepath.Join(rel, name)); err != nil {
				return err
			}
		}
	default:
		data, err := fsys.ReadFile(path)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(hasher, "F %s %o %d\x00", rel, mode.Perm(), len(data))
		_, _ = hasher.Write(data)
	}
	return nil
}
