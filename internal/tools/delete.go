package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameDelete = "Delete"

type DeleteSpec struct{}

func (s *DeleteSpec) Name() string { return ToolNameDelete }
func (s *DeleteSpec) Description() string {
	return "Delete a file, or a directory (recursive required for non-empty directories)."
}
func (s *DeleteSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":      map[string]interface{}{"type": "string"},
			"recursive": map[string]interface{}{"type": "boolean"},
		},
		"required": []string{"path"},
	}
}
func (s *DeleteSpec) RequiresExclusiveExecution() bool { return true }

type DeleteTool struct{ ws *workspace.Workspace }

func NewDeleteTool(ws *workspace.Workspace) *DeleteTool { return &DeleteTool{ws: ws} }

func NewDeleteToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewDeleteTool(ws) }
}

func (t *DeleteTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	recursive := GetBoolParam(params, "recursive", false)

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	editResult, snap, err := snapshotMutation(t.ws, ToolNameDelete, []string{rel}, func() (*runtime.EditResult, error) {
		return t.ws.Runtime.DeleteFile(ctx, rel, recursive)
	})
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{
		Result: map[string]interface{}{
			"path":            rel,
			"diff":            editResult.Diff,
			"success":         editResult.Success,
			"changes_applied": editResult.ChangesApplied,
		},
		SnapshotID: snap.ID,
	}
}

const ToolNameCreateDirectory = "CreateDirectory"

type CreateDirectorySpec struct{}

func (s *CreateDirectorySpec) Name() string        { return ToolNameCreateDirectory }
func (s *CreateDirectorySpec) Description() string { return "Create a directory, optionally recursively." }
func (s *CreateDirectorySpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":      map[string]interface{}{"type": "string"},
			"recursive": map[string]interface{}{"type": "boolean"},
		},
		"required": []string{"path"},
	}
}
func (s *CreateDirectorySpec) RequiresExclusiveExecution() bool { return true }

type CreateDirectoryTool struct{ ws *workspace.Workspace }

func NewCreateDirectoryTool(ws *workspace.Workspace) *CreateDirectoryTool {
	return &CreateDirectoryTool{ws: ws}
}

func NewCreateDirectoryToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewCreateDirectoryTool(ws) }
}

func (t *CreateDirectoryTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	recursive := GetBoolParam(params, "recursive", false)

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	result, err := t.ws.Runtime.CreateDirectory(ctx, rel, recursive)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{Result: map[string]interface{}{
		"path":    rel,
		"success": result.Success,
	}}
}
