// Package filesystem provides filesystem implementations for stowsave.
//
// This package contains implementations of the types.FS interface (the
// standard OS filesystem and an afero adapter) together with the recursive
// copy and move primitives the executor is built on. The primitives only
// talk to types.FS, so they behave the same over the real disk, an afero
// overlay, or an in-memory test filesystem.
package filesystem
