package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/diffengine"
)

const ToolNameReverseDiff = "ReverseDiff"

type ReverseDiffSpec struct{}

func (s *ReverseDiffSpec) Name() string { return ToolNameReverseDiff }
func (s *ReverseDiffSpec) Description() string {
	return "Compute the inverse of a unified diff without applying it to any file."
}
func (s *ReverseDiffSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"diff":          map[string]interface{}{"type": "string"},
			"include_files": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			"exclude_files": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		},
		"required": []string{"diff"},
	}
}

type ReverseDiffTool struct{}

func NewReverseDiffTool() *ReverseDiffTool { return &ReverseDiffTool{} }

func NewReverseDiffToolFactory() ToolFactory {
	return func(*Registry) ToolExecutor { return NewReverseDiffTool() }
}

func (t *ReverseDiffTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	diffText := GetStringParam(params, "diff", "")

	result, err := diffengine.ReverseDiff(diffText, diffengine.ReverseOptions{
		IncludeFiles: GetStringSliceParam(params, "include_files"),
		ExcludeFiles: GetStringSliceParam(params, "exclude_files"),
	})
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{Result: map[string]interface{}{
		"diff":           result.ReversedDiff,
		"success":        result.Success,
		"affected_files": result.AffectedFiles,
		"conflicts":      result.Conflicts,
	}}
}
