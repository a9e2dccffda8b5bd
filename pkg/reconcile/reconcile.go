package reconcile

import (
	"path/filepath"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/paths"
	"github.com/arthur-debert/stowsave/pkg/types"
)

// Placement is where a saved path ends up.
type Placement struct {
	// SavePath is the entity being saved.
	SavePath string `yaml:"save_path"`
	// PackageDir is the stow package it is moved into.
	PackageDir string `yaml:"package_dir"`
	// Ancestor is the common ancestor of SavePath and PackageDir, the
	// directory stow links into.
	Ancestor string `yaml:"ancestor"`
	// RelativePath is SavePath below Ancestor.
	RelativePath string `yaml:"relative_path"`
	// Destination is PackageDir/RelativePath.
	Destination string `yaml:"destination"`
	// DestinationDir is the parent of Destination.
	DestinationDir string `yaml:"destination_dir"`
}

// StowDir is the directory the linker runs in.
func (p Placement) StowDir() string {
	return filepath.Dir(p.PackageDir)
}

// PackageName is the name handed to the linker.
func (p Placement) PackageName() string {
	return filepath.Base(p.PackageDir)
}

// Reconcile validates savePath and packageDir and computes the placement.
// Both paths must already be absolute. The checks run in order and the
// first failure is returned.
func Reconcile(fsys types.FS, savePath, packageDir string) (Placement, error) {
	logger := logging.GetLogger("reconcile")

	if err := Exists(fsys, savePath); err != nil {
		return Placement{}, err
	}
	if err := IsNotSymlink(fsys, savePath); err != nil {
		return Placement{}, err
	}
	if err := IsValidContainer(fsys, packageDir); err != nil {
		return Placement{}, err
	}

	ancestor := paths.CommonAncestor(savePath, packageDir)
	logger.Debug().
		Str("save_path", savePath).
		Str("package_dir", packageDir).
		Str("ancestor", ancestor).
		Msg("Computed common ancestor")

	if err := AncestorDepthCheck(packageDir, ancestor); err != nil {
		return Placement{}, err
	}

	relative, err := paths.StripAncestor(ancestor, savePath)
	if err != nil {
		return Placement{}, errors.Wrap(err, errors.ErrInternal, "ancestor is not a prefix of the save path")
	}

	destination := filepath.Join(packageDir, relative)
	if err := TargetIsFree(fsys, destination); err != nil {
		return Placement{}, err
	}

	placement := Placement{
		SavePath:       savePath,
		PackageDir:     packageDir,
		Ancestor:       ancestor,
		RelativePath:   relative,
		Destination:    destination,
		DestinationDir: filepath.Dir(destination),
	}

	logger.Info().
		Str("destination", placement.Destination).
		Str("relative_path", placement.RelativePath).
		Msg("Placement resolved")

	return placement, nil
}
