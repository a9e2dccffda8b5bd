// Package testutil provides utilities for testing stowsave components.
//
// Key components:
//   - MemoryFS: In-memory types.FS with real symlink semantics, error
//     injection and a mutation counter, so reconciliation and planning can be
//     tested without touching the disk
//   - MockLinker: testify mock of types.Linker
//   - RecordingLinker: a types.Linker that snapshots the filesystem each time
//     it is invoked, for ordering assertions
//   - File helpers for tests that do use a real temporary directory
package testutil
