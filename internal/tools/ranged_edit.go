package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameApplyRangedEdit = "ApplyRangedEdit"

type ApplyRangedEditSpec struct{}

func (s *ApplyRangedEditSpec) Name() string { return ToolNameApplyRangedEdit }
func (s *ApplyRangedEditSpec) Description() string {
	return "Replace the 1-indexed inclusive [start, end] line range of a file with content. start=end=-1 appends."
}
func (s *ApplyRangedEditSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":    map[string]interface{}{"type": "string"},
			"content": map[string]interface{}{"type": "string"},
			"start":   map[string]interface{}{"type": "integer"},
			"end":     map[string]interface{}{"type": "integer"},
		},
		"required": []string{"path", "content", "start", "end"},
	}
}
func (s *ApplyRangedEditSpec) RequiresExclusiveExecution() bool { return true }

type ApplyRangedEditTool struct{ ws *workspace.Workspace }

func NewApplyRangedEditTool(ws *workspace.Workspace) *ApplyRangedEditTool {
	return &ApplyRangedEditTool{ws: ws}
}

func NewApplyRangedEditToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewApplyRangedEditTool(ws) }
}

func (t *ApplyRangedEditTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	content := GetStringParam(params, "content", "")
	start := GetIntParam(params, "start", 0)
	end := GetIntParam(params, "end", 0)

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	editResult, snap, err := snapshotMutation(t.ws, ToolNameApplyRangedEdit, []string{rel}, func() (*runtime.EditResult, error) {
		return t.ws.Runtime.ApplyRangedEdit(ctx, rel, content, start, end)
	})
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{
		Result: map[string]interface{}{
			"path":    rel,
			"diff":    editResult.Diff,
			"success": editResult.Success,
		},
		SnapshotID: snap.ID,
	}
}
