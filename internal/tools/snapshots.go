package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/snapshot"
	"github.com/patchloom/patchloom/internal/workspace"
)

const ToolNameListSnapshots = "ListSnapshots"

type ListSnapshotsSpec struct{}

func (s *ListSnapshotsSpec) Name() string        { return ToolNameListSnapshots }
func (s *ListSnapshotsSpec) Description() string { return "List the snapshot log for the workspace, most recent last." }
func (s *ListSnapshotsSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"limit":         map[string]interface{}{"type": "integer"},
			"include_diffs": map[string]interface{}{"type": "boolean"},
		},
	}
}

type ListSnapshotsTool struct{ ws *workspace.Workspace }

func NewListSnapshotsTool(ws *workspace.Workspace) *ListSnapshotsTool { return &ListSnapshotsTool{ws: ws} }

func NewListSnapshotsToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewListSnapshotsTool(ws) }
}

func (t *ListSnapshotsTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	snaps := t.ws.Log.List(snapshot.ListOptions{
		Limit:        GetIntParam(params, "limit", 0),
		IncludeDiffs: GetBoolParam(params, "include_diffs", false),
	})

	entries := make([]map[string]interface{}, 0, len(snaps))
	for _, snap := range snaps {
		entry := map[string]interface{}{
			"id":              snap.ID,
			"sequence_number": snap.SequenceNumber,
			"tool":            snap.Tool,
			"description":     snap.Description,
			"goal":            snap.Goal,
			"affected_files":  snap.AffectedFiles,
			"timestamp":       snap.Timestamp,
		}
		entries = append(entries, entry)
	}

	return &ToolResult{Result: map[string]interface{}{"snapshots": entries}}
}

const ToolNameMergeSnapshots = "MergeSnapshots"

// ToolNameConsolidateSnapshots is an alias under which MergeSnapshots is also registered.
const ToolNameConsolidateSnapshots = "ConsolidateSnapshots"

type MergeSnapshotsSpec struct{}

func (s *MergeSnapshotsSpec) Name() string { return ToolNameMergeSnapshots }
func (s *MergeSnapshotsSpec) Description() string {
	return "Collapse a contiguous range of snapshots into one, folding their diffs together."
}
func (s *MergeSnapshotsSpec) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"start": map[string]interface{}{"type": "integer"},
			"end":   map[string]interface{}{"type": "integer"},
			"title": map[string]interface{}{"type": "string"},
			"goal":  map[string]interface{}{"type": "string"},
		},
		"required": []string{"start", "end"},
	}
}
func (s *MergeSnapshotsSpec) RequiresExclusiveExecution() bool { return true }

type MergeSnapshotsTool struct{ ws *workspace.Workspace }

func NewMergeSnapshotsTool(ws *workspace.Workspace) *MergeSnapshotsTool { return &MergeSnapshotsTool{ws: ws} }

func NewMergeSnapshotsToolFactory(ws *workspace.Workspace) ToolFactory {
	return func(*Registry) ToolExecutor { return NewMergeSnapshotsTool(ws) }
}

func (t *MergeSnapshotsTool) Execute(ctx context.Context, params map[string]interface{}) *ToolResult {
	start := GetIntParam(params, "start", 0)
	end := GetIntParam(params, "end", 0)
	title := GetStringParam(params, "title", "")
	goal := GetStringParam(params, "goal", "")

	merged, err := t.ws.Log.Consolidate(start, end, title, goal)
	if err != nil {
		return &ToolResult{Error: err.Error()}
	}

	return &ToolResult{Result: map[string]interface{}{
		"id":              merged.ID,
		"sequence_number": merged.SequenceNumber,
		"description":     merged.Description,
		"goal":            merged.Goal,
		"affected_files":  merged.AffectedFiles,
	}}
}
