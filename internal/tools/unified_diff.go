package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/diffengine"
	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameApplyUnifiedDiff = "ApplyUnifiedDiff"

type ApplyUnifiedDiffSpec struct{}

func (s *ApplyUnifiedDiffSpec) Name() string { return ToolNameApplyUnifiedDiff }
func (s *ApplyUnifiedDiffSpec) Description() string {
	return "Apply a multi-file unified diff, via an external patch tool if configured, else the internal hunk applier."
}
func (s *ApplyUnifiedDiffSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"diff":     map[string]interface{}{"type": "string"},
			"base_dir": map[string]interface{}{"type": "string"},
			"dry_run":  map[string]interface{}{"type": "boolean"},
		},
		"required": []string{"diff"},
	}
}
func (s *ApplyUnifiedDiffSpec) RequiresExclusiveExecution() bool { return true }

type ApplyUnifiedDiffTool struct{ ws *workspace.Workspace }

func NewApplyUnifiedDiffTool(ws *workspace.Workspace) *ApplyUnifiedDiffTool {
	return &ApplyUnifiedDiffTool{ws: ws}
}

func NewApplyUnifiedDiffToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewApplyUnifiedDiffTool(ws) }
}

func (t *ApplyUnifiedDiffTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	diffText := GetStringParam(params, "diff", "")
	opts := runtime.ApplyDiffOptions{
		BaseDir: GetStringParam(params, "base_dir", ""),
		DryRun:  GetBoolParam(params, "dry_run", false),
	}

	fileDiffs, err := diffengine.ParseMultiFileDiff(diffText)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}
	paths := make([]string, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		p := diffengine.ExtractFilePath(fd.OldPath)
		if p == "" {
			p = diffengine.ExtractFilePath(fd.NewPath)
		}
		paths = append(paths, p)
	}

	if opts.DryRun {
		result, err := t.ws.Runtime.ApplyUnifiedDiff(ctx, diffText, opts)
		if err != nil {
			return &ToolResult{Error: err.Error()}
		}
		return &ToolResult{Result: map[string]interface{}{
			"success":       result.Success,
			"diff":          result.Diff,
			"is_multi_file": result.IsMultiFile,
			"dry_run":       true,
		}}
	}

	editResult, snap, err := snapshotMutation(t.ws, ToolNameApplyUnifiedDiff, paths, func() (*runtime.EditResult, error) {
		return t.ws.Runtime.ApplyUnifiedDiff(ctx, diffText, opts)
	})
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{
		Result: map[string]interface{}{
			"success":       editResult.Success,
			"diff":          editResult.Diff,
			"is_multi_file": editResult.IsMultiFile,
			"affected":      editResult.AffectedFiles,
		},
		SnapshotID: snap.ID,
	}
}
