package operations

import (
	"path/filepath"

	"github.com/arthur-debert/stowsave/pkg/reconcile"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultBackupSuffix is appended to the saved entity's name to form the
// backup name.
const DefaultBackupSuffix = ".bak"

// PlanOptions tunes plan construction.
type PlanOptions struct {
	BackupSuffix string
}

// BuildPlan returns the operations that save placement.SavePath into the
// package, in execution order.
func BuildPlan(placement reconcile.Placement, opts PlanOptions) Plan {
	suffix := opts.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	return Plan{
		ID: uuid.New().String(),
		Operations: []Operation{
			BackupCopy{
				Source:     placement.SavePath,
				BackupName: filepath.Base(placement.SavePath) + suffix,
			},
			EnsureDirectory{
				Path: placement.DestinationDir,
			},
			MoveIntoDirectory{
				Source:         placement.SavePath,
				DestinationDir: placement.DestinationDir,
			},
			InvokeLinker{
				WorkingDir:  placement.StowDir(),
				PackageName: placement.PackageName(),
			},
		},
	}
}

// Kinds lists the kind of each operation in order.
func (p Plan) Kinds() []OperationKind {
	kinds := make([]OperationKind, len(p.Operations))
	for i, op := range p.Operations {
		kinds[i] = op.Kind()
	}
	return kinds
}

// MarshalYAML renders each operation as a mapping tagged with its kind.
func (p Plan) MarshalYAML() (interface{}, error) {
	ops := make([]*yaml.Node, 0, len(p.Operations))
	for _, op := range p.Operations {
		node := &yaml.Node{}
		if err := node.Encode(op); err != nil {
			return nil, err
		}
		node.Content = append([]*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "kind"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(op.Kind())},
		}, node.Content...)
		ops = append(ops, node)
	}

	return struct {
		ID         string       `yaml:"id"`
		Operations []*yaml.Node `yaml:"operations"`
	}{
		ID:         p.ID,
		Operations: ops,
	}, nil
}
