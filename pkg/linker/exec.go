package linker

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultCommand is the linker used when none is configured
const DefaultCommand = "stow"

// Exec invokes a linker binary. Configured extra arguments come before the
// ones passed to Invoke, so the package name is always last.
type Exec struct {
	command string
	args    []string
	logger  zerolog.Logger
}

// NewExec creates a linker running command with the given extra arguments
func NewExec(command string, args []string) *Exec {
	if command == "" {
		command = DefaultCommand
	}
	return &Exec{
		command: command,
		args:    append([]string(nil), args...),
		logger:  logging.GetLogger("linker"),
	}
}

// Command returns the binary this linker runs
func (e *Exec) Command() string {
	return e.command
}

// Invoke runs the linker in workingDir and waits for it to exit. There is no
// timeout. A non-zero exit is reported in the result with a nil error; the
// error is only set when the process could not be run at all.
func (e *Exec) Invoke(workingDir string, args []string) (types.LinkerResult, error) {
	argv := append(append([]string(nil), e.args...), args...)
	result := types.LinkerResult{
		Command:  strings.Join(append([]string{e.command}, argv...), " "),
		ExitCode: -1,
	}

	if info, err := os.Stat(workingDir); err != nil || !info.IsDir() {
		return result, errors.Newf(errors.ErrInvalidInput, "working directory does not exist: %s", workingDir)
	}

	logging.LogCommand(e.logger, e.command, argv, workingDir)

	cmd := exec.Command(e.command, argv...)
	cmd.Dir = workingDir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			e.logger.Error().
				Err(err).
				Str("command", result.Command).
				Msg("Linker could not be started")
			return result, err
		}

		result.ExitCode = exitErr.ExitCode()
		e.logger.Error().
			Int("exit_code", result.ExitCode).
			Str("command", result.Command).
			Str("stdout", result.Stdout).
			Str("stderr", result.Stderr).
			Msg("Linker exited with an error")
		return result, nil
	}

	result.ExitCode = 0
	e.logger.Info().
		Str("command", result.Command).
		Str("dir", workingDir).
		Msg("Linker finished")

	return result, nil
}

var _ types.Linker = (*Exec)(nil)
