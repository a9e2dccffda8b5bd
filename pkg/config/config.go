package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective stowsave configuration
type Config struct {
	Linker LinkerConfig `koanf:"linker" toml:"linker"`
	Backup BackupConfig `koanf:"backup" toml:"backup"`
	Save   SaveConfig   `koanf:"save" toml:"save"`
}

// LinkerConfig selects the symlink-farm tool
type LinkerConfig struct {
	Command string   `koanf:"command" toml:"command"`
	Args    []string `koanf:"args" toml:"args"`
}

// BackupConfig controls the backup written before anything is moved
type BackupConfig struct {
	Suffix string `koanf:"suffix" toml:"suffix"`
	Verify bool   `koanf:"verify" toml:"verify"`
}

// SaveConfig controls the save as a whole
type SaveConfig struct {
	VerifyLink bool `koanf:"verify_link" toml:"verify_link"`
}

// Validate rejects configurations that cannot produce a working save
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Linker.Command) == "" {
		return errors.New(errors.ErrConfigValid, "linker.command must not be empty")
	}
	if c.Backup.Suffix == "" {
		return errors.New(errors.ErrConfigValid, "backup.suffix must not be empty")
	}
	if strings.ContainsAny(c.Backup.Suffix, `/`+string(filepath.Separator)) {
		return errors.Newf(errors.ErrConfigValid, "backup.suffix '%s' must not contain a path separator", c.Backup.Suffix)
	}
	return nil
}

// TOML renders the configuration in the user file format
func (c *Config) TOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(out), nil
}
