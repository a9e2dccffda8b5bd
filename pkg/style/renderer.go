package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/stowsave/pkg/operations"
	"gopkg.in/yaml.v3"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderPlan(plan operations.Plan) (string, error)
	RenderResults(results []operations.OperationResult) string
}

// NewRenderer returns the renderer for a concrete format. FormatAuto must
// be resolved first; it falls back to plain text.
func NewRenderer(format Format) Renderer {
	switch format {
	case FormatTerminal:
		return NewTerminalRenderer()
	case FormatYAML:
		return NewYAMLRenderer()
	default:
		return NewPlainRenderer()
	}
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderPlan renders the plan as a numbered list
func (r *TerminalRenderer) RenderPlan(plan operations.Plan) (string, error) {
	if len(plan.Operations) == 0 {
		return MutedStyle.Sprint("No operations to perform"), nil
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Sprint("Plan") + " " + MutedStyle.Sprint(plan.ID) + "\n")

	for i, op := range plan.Operations {
		result.WriteString(fmt.Sprintf("  %s %d. %s %s\n",
			PendingIndicator,
			i+1,
			KindStyle.Sprintf("%-20s", op.Kind()),
			op.Describe()))
	}

	return strings.TrimRight(result.String(), "\n"), nil
}

// RenderResults renders one line per attempted operation
func (r *TerminalRenderer) RenderResults(results []operations.OperationResult) string {
	var result strings.Builder
	for _, res := range results {
		indicator, text := SuccessStyle.Sprint(SuccessIndicator), res.Message
		switch {
		case res.Error != nil:
			indicator, text = ErrorStyle.Sprint(ErrorIndicator), res.Operation.Describe()
		case res.Skipped:
			indicator = MutedStyle.Sprint(SkippedIndicator)
		}
		result.WriteString(fmt.Sprintf("  %s %s\n", indicator, text))
	}
	return strings.TrimRight(result.String(), "\n")
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderPlan renders the plan without styling
func (r *PlainRenderer) RenderPlan(plan operations.Plan) (string, error) {
	if len(plan.Operations) == 0 {
		return "No operations to perform", nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Plan %s:\n", plan.ID))
	for i, op := range plan.Operations {
		result.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, op.Kind(), op.Describe()))
	}
	return strings.TrimRight(result.String(), "\n"), nil
}

// RenderResults renders plain results
func (r *PlainRenderer) RenderResults(results []operations.OperationResult) string {
	var result strings.Builder
	for _, res := range results {
		status := "ok"
		text := res.Message
		switch {
		case res.Error != nil:
			status, text = "failed", res.Operation.Describe()
		case res.Skipped:
			status = "skipped"
		}
		result.WriteString(fmt.Sprintf("  [%s] %s\n", status, text))
	}
	return strings.TrimRight(result.String(), "\n")
}

// YAMLRenderer renders plans as YAML
type YAMLRenderer struct{}

// NewYAMLRenderer creates a new YAML renderer
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// RenderPlan marshals the plan
func (r *YAMLRenderer) RenderPlan(plan operations.Plan) (string, error) {
	out, err := yaml.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to render plan as yaml: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// RenderResults marshals a summary of each result
func (r *YAMLRenderer) RenderResults(results []operations.OperationResult) string {
	type entry struct {
		Kind    string `yaml:"kind"`
		Status  string `yaml:"status"`
		Message string `yaml:"message,omitempty"`
		Error   string `yaml:"error,omitempty"`
	}

	entries := make([]entry, 0, len(results))
	for _, res := range results {
		e := entry{Kind: string(res.Operation.Kind()), Status: "ok", Message: res.Message}
		switch {
		case res.Error != nil:
			e.Status, e.Error = "failed", res.Error.Error()
		case res.Skipped:
			e.Status = "skipped"
		}
		entries = append(entries, e)
	}

	out, err := yaml.Marshal(map[string]interface{}{"results": entries})
	if err != nil {
		return fmt.Sprintf("# failed to render results: %v", err)
	}
	return strings.TrimRight(string(out), "\n")
}
