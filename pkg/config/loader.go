package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/errors"
	"github.com/arthur-debert/stowsave/pkg/logging"
	"github.com/arthur-debert/stowsave/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "STOWSAVE_"

// LoadOptions selects the optional layers
type LoadOptions struct {
	// ConfigFile replaces the default user config location. Unlike the
	// default location it must exist.
	ConfigFile string
	// Overrides are dotted keys set from the command line, e.g.
	// "linker.command".
	Overrides map[string]interface{}
}

// Load builds the effective configuration and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = paths.ConfigFilePath()
	} else {
		path = paths.ExpandHome(path)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file '%s'", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file '%s' cannot be read", path)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply command line overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("linker", cfg.Linker.Command).
		Strs("linker_args", cfg.Linker.Args).
		Str("backup_suffix", cfg.Backup.Suffix).
		Msg("Configuration loaded")

	return &cfg, nil
}

// sections are the top-level tables environment variables may target
var sections = map[string]bool{"linker": true, "backup": true, "save": true}

// envKey maps STOWSAVE_BACKUP_SUFFIX to backup.suffix. Only the first
// underscore separates the section, so STOWSAVE_SAVE_VERIFY_LINK becomes
// save.verify_link. Variables outside the known sections, such as
// STOWSAVE_STATE_DIR, are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" || !sections[section] {
		return ""
	}
	return section + "." + rest
}
