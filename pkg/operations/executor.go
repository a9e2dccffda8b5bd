package operations

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/filesystem"
	"github.com/arthur-debert/stowsave/pkg/internal/hashutil"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/types"
	"github.com/rs/zerolog"
)

// ExecutorOptions tunes how a plan is run.
type ExecutorOptions struct {
	// DryRun logs each operation instead of performing it.
	DryRun bool
	// VerifyBackup compares checksums of the source and its backup right
	// after the backup is written.
	VerifyBackup bool
}

// Executor runs a Plan against a filesystem and a linker.
type Executor struct {
	fileSystem   types.FS
	linker       types.Linker
	dryRun       bool
	verifyBackup bool
}

// NewExecutor creates a new operation executor.
func NewExecutor(fs types.FS, linker types.Linker, opts ExecutorOptions) *Executor {
	return &Executor{
		fileSystem:   fs,
		linker:       linker,
		dryRun:       opts.DryRun,
		verifyBackup: opts.VerifyBackup,
	}
}

// Execute runs the plan's operations in order and stops at the first
// failure, returning that operation's error unchanged. The results cover
// every operation attempted, including the failed one. Completed operations
// are not undone.
func (e *Executor) Execute(plan Plan) ([]OperationResult, error) {
	logger := logging.GetLogger("operations.executor").With().
		Str("plan_id", plan.ID).
		Int("operation_count", len(plan.Operations)).
		Bool("dry_run", e.dryRun).
		Logger()

	done := logging.LogOperationStart(logger, "execute plan")
	defer done()

	results := make([]OperationResult, 0, len(plan.Operations))

	for i, op := range plan.Operations {
		logger.Debug().
			Int("step", i+1).
			Str("kind", string(op.Kind())).
			Msg("Executing operation")

		result := e.executeOne(logger, op)
		results = append(results, result)

		if result.Error != nil {
			logger.Error().
				Err(result.Error).
				Str("kind", string(op.Kind())).
				Msg("Operation failed, aborting plan")
			return results, result.Error
		}
	}

	return results, nil
}

// executeOne executes a single operation.
func (e *Executor) executeOne(logger zerolog.Logger, op Operation) OperationResult {
	if e.dryRun {
		return e.simulateOperation(logger, op)
	}

	var (
		message string
		err     error
	)

	switch o := op.(type) {
	case BackupCopy:
		message, err = e.backupCopy(o)
	case EnsureDirectory:
		message, err = e.ensureDirectory(o)
	case MoveIntoDirectory:
		message, err = e.moveIntoDirectory(o)
	case InvokeLinker:
		message, err = e.invokeLinker(logger, o)
	default:
		err = errors.Newf(errors.ErrInternal, "unknown operation kind %q", op.Kind())
	}

	if err != nil {
		return OperationResult{Operation: op, Success: false, Error: err}
	}

	logger.Info().Str("kind", string(op.Kind())).Msg(message)
	return OperationResult{Operation: op, Success: true, Message: message}
}

func (e *Executor) simulateOperation(logger zerolog.Logger, op Operation) OperationResult {
	message := "[dry-run] " + op.Describe()
	logger.Info().Str("kind", string(op.Kind())).Msg(message)
	return OperationResult{Operation: op, Success: true, Skipped: true, Message: message}
}

func (e *Executor) backupCopy(op BackupCopy) (string, error) {
	backupPath := op.BackupPath()
	if err := filesystem.Copy(e.fileSystem, op.Source, backupPath); err != nil {
		return "", err
	}

	if e.verifyBackup {
		if err := e.verify(op.Source, backupPath); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("Backed up %s to %s", op.Source, backupPath), nil
}

func (e *Executor) verify(source, backup string) error {
	want, err := hashutil.CalculateTreeChecksum(e.fileSystem, source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to checksum '%s'", source)
	}
	got, err := hashutil.CalculateTreeChecksum(e.fileSystem, backup)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to checksum '%s'", backup)
	}
	if want != got {
		return errors.Newf(errors.ErrVerify, "Backup '%s' does not match '%s'", backup, source).
			WithDetail("source_checksum", want).
			WithDetail("backup_checksum", got)
	}
	return nil
}

func (e *Executor) ensureDirectory(op EnsureDirectory) (string, error) {
	if err := e.fileSystem.MkdirAll(op.Path, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", op.Path)
	}
	return fmt.Sprintf("Directory %s ready", op.Path), nil
}

func (e *Executor) moveIntoDirectory(op MoveIntoDirectory) (string, error) {
	target, err := filesystem.MoveInto(e.fileSystem, op.Source, op.DestinationDir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved %s to %s", op.Source, target), nil
}

func (e *Executor) invokeLinker(logger zerolog.Logger, op InvokeLinker) (string, error) {
	if e.linker == nil {
		return "", errors.New(errors.ErrInternal, "no linker configured")
	}

	result, err := e.linker.Invoke(op.WorkingDir, []string{op.PackageName})
	command := result.Command
	if command == "" {
		command = "linker " + op.PackageName
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrExternalTool, "Failed to run '%s'", command)
	}

	if stdout := strings.TrimSpace(result.Stdout); stdout != "" {
		logger.Debug().Str("stdout", stdout).Msg("Linker output")
	}

	if !result.Success() {
		return "", errors.Newf(errors.ErrExternalTool, "Failed to run '%s': %s", command, result.Stderr).
			WithDetail("exit_code", result.ExitCode).
			WithDetail("working_dir", op.WorkingDir)
	}

	return fmt.Sprintf("Linked package %s", op.PackageName), nil
}
