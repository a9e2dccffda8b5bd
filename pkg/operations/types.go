package operations

import (
	"fmt"
	"path/filepath"
)

// OperationKind names an Operation variant.
type OperationKind string

const (
	KindBackupCopy        OperationKind = "backup_copy"
	KindEnsureDirectory   OperationKind = "ensure_directory"
	KindMoveIntoDirectory OperationKind = "move_into_directory"
	KindInvokeLinker      OperationKind = "invoke_linker"
)

// Operation is one filesystem side effect of a save. The set of variants is
// closed: BackupCopy, EnsureDirectory, MoveIntoDirectory and InvokeLinker.
type Operation interface {
	Kind() OperationKind
	Describe() string
	operation()
}

// BackupCopy copies Source to a sibling named BackupName.
type BackupCopy struct {
	Source     string `yaml:"source"`
	BackupName string `yaml:"backup_name"`
}

// BackupPath is where the copy is written.
func (o BackupCopy) BackupPath() string {
	return filepath.Join(filepath.Dir(o.Source), o.BackupName)
}

func (BackupCopy) Kind() OperationKind { return KindBackupCopy }
func (o BackupCopy) Describe() string {
	return fmt.Sprintf("Back up %s to %s", o.Source, o.BackupPath())
}
func (BackupCopy) operation() {}

// EnsureDirectory creates Path and any missing parents.
type EnsureDirectory struct {
	Path string `yaml:"path"`
}

func (EnsureDirectory) Kind() OperationKind { return KindEnsureDirectory }
func (o EnsureDirectory) Describe() string {
	return fmt.Sprintf("Ensure directory %s exists", o.Path)
}
func (EnsureDirectory) operation() {}

// MoveIntoDirectory moves Source into DestinationDir, keeping its name.
type MoveIntoDirectory struct {
	Source         string `yaml:"source"`
	DestinationDir string `yaml:"destination_dir"`
}

// Target is the path Source has after the move.
func (o MoveIntoDirectory) Target() string {
	return filepath.Join(o.DestinationDir, filepath.Base(o.Source))
}

func (MoveIntoDirectory) Kind() OperationKind { return KindMoveIntoDirectory }
func (o MoveIntoDirectory) Describe() string {
	return fmt.Sprintf("Move %s into %s", o.Source, o.DestinationDir)
}
func (MoveIntoDirectory) operation() {}

// InvokeLinker runs the linker on PackageName from WorkingDir.
type InvokeLinker struct {
	WorkingDir  string `yaml:"working_dir"`
	PackageName string `yaml:"package_name"`
}

func (InvokeLinker) Kind() OperationKind { return KindInvokeLinker }
func (o InvokeLinker) Describe() string {
	return fmt.Sprintf("Link package %s from %s", o.PackageName, o.WorkingDir)
}
func (InvokeLinker) operation() {}

// Plan is the ordered list of operations for one save.
type Plan struct {
	ID         string
	Operations []Operation
}

// OperationResult captures the outcome of executing an operation.
type OperationResult struct {
	Operation Operation
	Success   bool
	Skipped   bool
	Message   string
	Error     error
}
