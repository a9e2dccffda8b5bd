// Package operations turns a reconciled placement into an ordered plan of
// filesystem side effects and runs it.
//
// A save is always the same four steps:
//
//  1. BackupCopy: copy the entity next to itself under a backup name
//  2. EnsureDirectory: create the destination directory in the package
//  3. MoveIntoDirectory: move the entity into that directory
//  4. InvokeLinker: run the symlink-farm tool on the package
//
// BuildPlan produces them in exactly that order and the Executor runs them
// sequentially, stopping at the first failure. Nothing is rolled back; a
// failed run leaves whatever the completed steps produced.
package operations
