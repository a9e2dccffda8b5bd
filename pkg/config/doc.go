// Package config handles configuration management for stowsave.
// It layers embedded defaults, the user's TOML file, STOWSAVE_* environment
// variables and command-line overrides, in increasing priority.
package config
