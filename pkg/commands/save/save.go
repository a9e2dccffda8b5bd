package save

import (
	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/filesystem"
	"github.com/arthur-debert/stowsave/pkg/linker"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/operations"
	"github.com/arthur-debert/stowsave/pkg/paths"
	"github.com/arthur-debert/stowsave/pkg/reconcile"
	"github.com/arthur-debert/stowsave/pkg/types"
	"github.com/rs/zerolog"
)

// SuccessMessage is printed once a save has fully completed
const SuccessMessage = "Path successfully saved, backed up, and stowed"

// SaveOptions holds options for the save command
type SaveOptions struct {
	// SavePath is the file or directory to save, as given by the user.
	SavePath string
	// PackageDir is the stow package to save into.
	PackageDir string

	BackupSuffix string
	DryRun       bool
	VerifyBackup bool
	VerifyLink   bool

	// FileSystem is used for every read and write, including resolving
	// symlinks in the two paths. Defaults to the host filesystem.
	FileSystem types.FS
	Linker     types.Linker // Defaults to running stow
}

// SaveResult describes what a save did, or would do in a dry run
type SaveResult struct {
	Placement reconcile.Placement
	Plan      operations.Plan
	Results   []operations.OperationResult
	DryRun    bool
}

// SaveFile moves a file or directory into a stow package, leaving a backup
// next to the original, and runs the linker so the original location
// becomes a symlink into the package.
//
// Preconditions are all checked before anything is touched. Once execution
// starts, the first failing step aborts the save and earlier steps are not
// undone; the partial result is returned alongside the error.
func SaveFile(opts SaveOptions) (*SaveResult, error) {
	logger := logging.GetLogger("commands.save")
	done := logging.LogOperationStart(logger, "save")
	defer done()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	lnk := opts.Linker
	if lnk == nil {
		lnk = linker.NewExec(linker.DefaultCommand, nil)
	}

	savePath, err := paths.Resolve(fs, opts.SavePath)
	if err != nil {
		return nil, err
	}
	packageDir, err := paths.ResolveDir(fs, opts.PackageDir)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("save_path", savePath).
		Str("package_dir", packageDir).
		Bool("dry_run", opts.DryRun).
		Msg("Saving path into package")

	placement, err := reconcile.Reconcile(fs, savePath, packageDir)
	if err != nil {
		logSave(logger, opts, nil, err)
		return nil, err
	}

	plan := operations.BuildPlan(placement, operations.PlanOptions{BackupSuffix: opts.BackupSuffix})
	result := &SaveResult{
		Placement: placement,
		Plan:      plan,
		DryRun:    opts.DryRun,
	}

	executor := operations.NewExecutor(fs, lnk, operations.ExecutorOptions{
		DryRun:       opts.DryRun,
		VerifyBackup: opts.VerifyBackup,
	})
	result.Results, err = executor.Execute(plan)
	if err != nil {
		logSave(logger, opts, result, err)
		return result, err
	}

	if opts.VerifyLink && !opts.DryRun {
		if err := VerifyLink(fs, placement); err != nil {
			logSave(logger, opts, result, err)
			return result, err
		}
	}

	logSave(logger, opts, result, nil)
	return result, nil
}

// logSave logs the save command execution
func logSave(logger zerolog.Logger, opts SaveOptions, result *SaveResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err).Str("error_code", string(errors.GetErrorCode(err)))
	}

	event = event.
		Str("command", "save").
		Str("save_path", opts.SavePath).
		Str("package_dir", opts.PackageDir).
		Bool("dry_run", opts.DryRun)

	if result != nil {
		event = event.
			Str("plan_id", result.Plan.ID).
			Str("destination", result.Placement.Destination).
			Int("operations_run", len(result.Results))
	}

	event.Msg("Save command completed")
}
