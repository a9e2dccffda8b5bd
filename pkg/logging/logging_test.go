package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stowsave/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := t.TempDir()
			t.Setenv(paths.EnvStateDir, stateDir)

			var buf bytes.Buffer
			SetupLoggerWithOutput(tt.verbosity, &buf)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(filepath.Join(stateDir, paths.LogFileName))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogger_WritesToConsoleAndFile(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv(paths.EnvStateDir, stateDir)

	var buf bytes.Buffer
	SetupLoggerWithOutput(1, &buf)
	logger := GetLogger("test-component")
	logger.Info().Msg("hello from test")

	assert.Contains(t, buf.String(), "hello from test")
	assert.NotContains(t, buf.String(), "\x1b[", "non-terminal output must not be coloured")

	data, err := os.ReadFile(filepath.Join(stateDir, paths.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test-component"`)
}

func TestSetupLogger_UnwritableStateDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	t.Setenv(paths.EnvStateDir, filepath.Join(blocker, "state"))

	var buf bytes.Buffer
	SetupLoggerWithOutput(0, &buf)

	assert.Contains(t, buf.String(), "Failed to create log file")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "save")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"duration"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand(zerolog.New(&buf), "stow", []string{"-v", "pkg"}, "/home/u/dotfiles")

	out := buf.String()
	assert.Contains(t, out, `"command":"stow"`)
	assert.Contains(t, out, `"dir":"/home/u/dotfiles"`)
	assert.Contains(t, out, "Executing command")
}

func TestGetLogger_AddsComponent(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("linker")
	logger.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"linker"`)
}
