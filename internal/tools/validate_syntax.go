package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameValidateSyntax = "ValidateSyntax"

type ValidateSyntaxSpec struct{}

func (s *ValidateSyntaxSpec) Name() string { return ToolNameValidateSyntax }
func (s *ValidateSyntaxSpec) Description() string {
	return "Check a workspace file's syntax without editing it, for languages with tree-sitter support."
}
func (s *ValidateSyntaxSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{"type": "string"},
		},
		"required": []string{"path"},
	}
}

type ValidateSyntaxTool struct{ ws *workspace.Workspace }

func NewValidateSyntaxTool(ws *workspace.Workspace) *ValidateSyntaxTool {
	return &ValidateSyntaxTool{ws: ws}
}

func NewValidateSyntaxToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewValidateSyntaxTool(ws) }
}

func (t *ValidateSyntaxTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	result, err := t.ws.Runtime.ValidateFile(ctx, rel)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	messages := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		messages = append(messages, e.Message)
	}

	return &ToolResult{Result: map[string]interface{}{
		"valid":    result.Valid,
		"language": result.Language,
		"errors":   messages,
	}}
}
