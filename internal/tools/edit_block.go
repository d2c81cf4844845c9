package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameApplyEditBlock = "ApplyEditBlock"

type ApplyEditBlockSpec struct{}

func (s *ApplyEditBlockSpec) Name() string { return ToolNameApplyEditBlock }
func (s *ApplyEditBlockSpec) Description() string {
	return "Replace the first exact occurrence of search with replace in a file. An empty search against an absent file creates it."
}
func (s *ApplyEditBlockSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":              map[string]interface{}{"type": "string"},
			"search":            map[string]interface{}{"type": "string", "description": "Exact text to find; empty string plus an absent file creates it."},
			"replace":           map[string]interface{}{"type": "string"},
			"ignore_whitespace": map[string]interface{}{"type": "boolean", "description": "Collapse whitespace runs when locating the match."},
		},
		"required": []string{"path", "search", "replace"},
	}
}
func (s *ApplyEditBlockSpec) RequiresExclusiveExecution() bool { return true }

type ApplyEditBlockTool struct{ ws *workspace.Workspace }

func NewApplyEditBlockTool(ws *workspace.Workspace) *ApplyEditBlockTool {
	return &ApplyEditBlockTool{ws: ws}
}

func NewApplyEditBlockToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewApplyEditBlockTool(ws) }
}

func (t *ApplyEditBlockTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	path := GetStringParam(params, "path", "")
	search := GetStringParam(params, "search", "")
	replace := GetStringParam(params, "replace", "")
	ignoreWS := GetBoolParam(params, "ignore_whitespace", false)

	rel, _, err := t.ws.Resolve(path)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	editResult, snap, err := snapshotMutation(t.ws, ToolNameApplyEditBlock, []string{rel}, func() (*runtime.EditResult, error) {
		return t.ws.Runtime.ApplyEditBlock(ctx, rel, search, replace, ignoreWS)
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
