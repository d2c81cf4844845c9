package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameApplyWholeFileEdit = "ApplyWholeFileEdit"

type ApplyWholeFileEditSpec struct{}

func (s *ApplyWholeFileEditSpec) Name() string { return ToolNameApplyWholeFileEdit }
func (s *ApplyWholeFileEditSpec) Description() string {
	return "Write content as the full contents of a file, creating it (and its parent directories) if absent."
}
func (s *ApplyWholeFileEditSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":    map[string]interface{}{"type": "string", "description": "Workspace-relative path to write."},
			"content": map[string]interface{}{"type": "string", "description": "Full file content."},
		},
		"required": []string{"path", "content"},
	}
}
func (s *ApplyWholeFileEditSpec) RequiresExclusiveExecution() bool { return true }

type ApplyWholeFileEditTool struct {
	ws *workspace.Workspace
}

func NewApplyWholeFileEditTool(ws *workspace.Workspace) *ApplyWholeFileEditTool {
	return &ApplyWholeFileEditTool{ws: ws}
}

func NewApplyWholeFileEditToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewApplyWholeFileEditTool(ws) }
}

func (t *ApplyWholeFileEditTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	content := GetStringParam(params, "content", "")

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	editResult, snap, err := snapshotMutation(t.ws, ToolNameApplyWholeFileEdit, []string{rel}, func() (*runtime.EditResult, error) {
		return t.ws.Runtime.WriteFile(ctx, rel, content, runtime.WriteOptions{Mode: runtime.ModeCreateOrOverwrite})
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
