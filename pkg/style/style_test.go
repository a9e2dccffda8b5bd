package style

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/stowsave/pkg/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samplePlan() operations.Plan {
	return operations.Plan{
		ID: "6f1c2a8e-0000-4000-8000-000000000000",
		Operations: []operations.Operation{
			operations.BackupCopy{Source: "/home/u/proj/script", BackupName: "script.bak"},
			operations.EnsureDirectory{Path: "/home/u/dotfiles/scripts/proj"},
			operations.MoveIntoDirectory{Source: "/home/u/proj/script", DestinationDir: "/home/u/dotfiles/scripts/proj"},
			operations.InvokeLinker{WorkingDir: "/home/u/dotfiles", PackageName: "scripts"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"text", FormatAuto, false},
		{"plain", FormatText, false},
		{"term", FormatTerminal, false},
		{"YAML", FormatYAML, false},
		{"json", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, FormatText, DetectFormat(f))
	assert.Equal(t, FormatText, FormatAuto.Resolve(f))
	assert.Equal(t, FormatYAML, FormatYAML.Resolve(f))
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, FormatText, DetectFormat(os.Stdout))
}

func TestPlainRenderer_Plan(t *testing.T) {
	out, err := NewPlainRenderer().RenderPlan(samplePlan())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Plan 6f1c2a8e-0000-4000-8000-000000000000:", lines[0])
	assert.Equal(t, "  1. backup_copy: Back up /home/u/proj/script to /home/u/proj/script.bak", lines[1])
	assert.Equal(t, "  4. invoke_linker: Link package scripts from /home/u/dotfiles", lines[4])
}

func TestPlainRenderer_Results(t *testing.T) {
	plan := samplePlan()
	out := NewPlainRenderer().RenderResults([]operations.OperationResult{
		{Operation: plan.Operations[0], Success: true, Message: "Backed up"},
		{Operation: plan.Operations[1], Success: true, Skipped: true, Message: "[dry-run] Ensure"},
		{Operation: plan.Operations[2], Error: errors.New("boom")},
	})

	assert.Equal(t, "  [ok] Backed up\n  [skipped] [dry-run] Ensure\n  [failed] Move /home/u/proj/script into /home/u/dotfiles/scripts/proj", out)
}

func TestTerminalRenderer_ContainsEveryStep(t *testing.T) {
	out, err := NewTerminalRenderer().RenderPlan(samplePlan())
	require.NoError(t, err)

	for _, op := range samplePlan().Operations {
		assert.Contains(t, out, op.Describe())
		assert.Contains(t, out, string(op.Kind()))
	}
}

func TestRenderers_EmptyPlan(t *testing.T) {
	for _, r := range []Renderer{NewPlainRenderer(), NewTerminalRenderer()} {
		out, err := r.RenderPlan(operations.Plan{})
		require.NoError(t, err)
		assert.Contains(t, out, "No operations to perform")
	}
}

func TestYAMLRenderer(t *testing.T) {
	out, err := NewYAMLRenderer().RenderPlan(samplePlan())
	require.NoError(t, err)

	var decoded struct {
		ID         string                   `yaml:"id"`
		Operations []map[string]interface{} `yaml:"operations"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "6f1c2a8e-0000-4000-8000-000000000000", decoded.ID)
	require.Len(t, decoded.Operations, 4)
	assert.Equal(t, "ensure_directory", decoded.Operations[1]["kind"])

	results := NewYAMLRenderer().RenderResults([]operations.OperationResult{
		{Operation: samplePlan().Operations[3], Error: errors.New("stow failed")},
	})
	assert.Contains(t, results, "status: failed")
	assert.Contains(t, results, "error: stow failed")
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, &TerminalRenderer{}, NewRenderer(FormatTerminal))
	assert.IsType(t, &YAMLRenderer{}, NewRenderer(FormatYAML))
	assert.IsType(t, &PlainRenderer{}, NewRenderer(FormatText))
	assert.IsType(t, &PlainRenderer{}, NewRenderer(FormatAuto))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "a", Indent("a", 0))
	assert.Equal(t, "    a\n\n    b", Indent("a\n\nb", 2))
	assert.Contains(t, Bold("x"), "x")
}
