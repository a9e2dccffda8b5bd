package save

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/reconcile"
	"github.com/arthur-debert/stowsave/pkg/types"
)

const maxLinkHops = 40

// VerifyLink checks that the original location is now a symlink that
// resolves to the entity's new home inside the package.
func VerifyLink(fs types.FS, placement reconcile.Placement) error {
	info, err := fs.Lstat(placement.SavePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrVerify, "Path '%s' was not linked", placement.SavePath)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return errors.Newf(errors.ErrVerify, "Path '%s' is not a symlink after linking", placement.SavePath)
	}

	current := placement.SavePath
	for hops := 0; hops < maxLinkHops; hops++ {
		target, err := fs.Readlink(current)
		if err != nil {
			return errors.Wrapf(err, errors.ErrVerify, "failed to read link '%s'", current)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)

		if current == placement.Destination {
			return nil
		}

		info, err := fs.Lstat(current)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			break
		}
	}

	return errors.Newf(errors.ErrVerify, "Path '%s' links to '%s', expected '%s'",
		placement.SavePath, current, placement.Destination).
		WithDetail("destination", placement.Destination)
}
