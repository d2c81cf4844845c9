package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameCompareFiles = "CompareFiles"

type CompareFilesSpec struct{}

func (s *CompareFilesSpec) Name() string        { return ToolNameCompareFiles }
func (s *CompareFilesSpec) Description() string { return "Compute the unified diff between two workspace files." }
func (s *CompareFilesSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path_a":        map[string]interface{}{"type": "string"},
			"path_b":        map[string]interface{}{"type": "string"},
			"context_lines": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"path_a", "path_b"},
	}
}

type CompareFilesTool struct{ ws *workspace.Workspace }

func NewCompareFilesTool(ws *workspace.Workspace) *CompareFilesTool { return &CompareFilesTool{ws: ws} }

func NewCompareFilesToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewCompareFilesTool(ws) }
}

func (t *CompareFilesTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	pathA := GetStringParam(params, "path_a", "")
	pathB := GetStringParam(params, "path_b", "")
	contextLines := GetIntParam(params, "context_lines", 0)

	relA, _, err := t.ws.Resolve(pathA)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}
	relB, _, err := t.ws.Resolve(pathB)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	diff, err := t.ws.Runtime.CompareFiles(ctx, relA, relB, runtime.GenerateDiffOptions{ContextLines: contextLines})
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{Result: map[string]interface{}{"diff": diff}}
}
