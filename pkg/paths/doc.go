// Package paths provides centralized path handling for stowsave.
//
// It covers two concerns:
//
//   - Turning command-line input into absolute, resolved paths, and the
//     component-wise arithmetic the reconciler needs on them (common
//     ancestor, relative remainder, depth below an ancestor).
//   - XDG Base Directory locations for the configuration and log files.
//
// # Environment Variables
//
//   - STOWSAVE_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/stowsave)
//   - STOWSAVE_STATE_DIR: Override the state directory holding the log (default: $XDG_STATE_HOME/stowsave)
//
// # Path Resolution
//
// The path being saved keeps its final component unresolved so that a
// symlink given on the command line is still reported as one. The package
// directory is resolved all the way when it exists.
package paths
