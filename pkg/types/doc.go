// Package types defines the interfaces shared across stowsave.
// This includes the FS port used by the reconciler and executor, and the
// Linker port that drives the external symlink-farm tool.
package types
