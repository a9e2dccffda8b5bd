package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for stowsave
	EnvConfigDir = "STOWSAVE_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for stowsave
	EnvStateDir = "STOWSAVE_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "stowsave"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "stowsave.log"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the default location of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory holding state such as the log file
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
