package tools

import (
	"context"
	"testing"

	"github.com/patchloom/patchloom/internal/config"
	"github.com/patchloom/patchloom/internal/secretdetect"
	"github.com/patchloom/patchloom/internal/snapshot"
	"github.com/patchloom/patchloom/internal/workspace"
)

func newTestRegistry(t *testing.T) (*workspace.Workspace, *Registry) {
	t.Helper()
	ws, err := workspace.Open(t.TempDir(), config.Default(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ws, NewDefaultRegistry(ws, secretdetect.NewDetector())
}

func TestExecute_UnknownTool(t *testing.T) {
	_, registry := newTestRegistry(t)

	result := registry.Execute(context.Background(), &ToolCall{ID: "1", Name: "NoSuchTool"})
	if result.Error == "" {
		t.Fatalf("expected an error for an unknown tool")
	}
}

func TestExecute_RejectsUnknownParameter(t *testing.T) {
	_, registry := newTestRegistry(t)

	result := registry.Execute(context.Background(), &ToolCall{
		ID:   "1",
		Name: ToolNameApplyWholeFileEdit,
		Parameters: map[string]interface{}{
			"path":     "a.txt",
			"content":  "hi",
			"bogus_extra_field": true,
		},
	})
	if result.Error == "" {
		t.Fatalf("expected unknown parameter to be rejected")
	}
}

func TestExecute_RejectsMissingRequired(t *testing.T) {
	_, registry := newTestRegistry(t)

	result := registry.Execute(context.Background(), &ToolCall{
		ID:   "1",
		Name: ToolNameApplyWholeFileEdit,
		Parameters: map[string]interface{}{
			"path": "a.txt",
		},
	})
	if result.Error == "" {
		t.Fatalf("expected missing required parameter to be rejected")
	}
}

func TestExecute_ApplyWholeFileEditCreatesSnapshot(t *testing.T) {
	_, registry := newTestRegistry(t)

	result := registry.Execute(context.Background(), &ToolCall{
		ID:   "1",
		Name: ToolNameApplyWholeFileEdit,
		Parameters: map[string]interface{}{
			"path":    "hello.txt",
			"content": "hello world\n",
		},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.SnapshotID == "" {
		t.Fatalf("expected a snapshot to be recorded")
	}
	if success, _ := result.Result["success"].(bool); !success {
		t.Fatalf("expected success=true, got %v", result.Result["success"])
	}
}

func TestExecute_ReverseDiffDoesNotSnapshot(t *testing.T) {
	_, registry := newTestRegistry(t)

	diff := "--- a/x.txt\n+++ b/x.txt\n@@ -1 +1 @@\n-old\n+new\n"
	result := registry.Execute(context.Background(), &ToolCall{
		ID:         "1",
		Name:       ToolNameReverseDiff,
		Parameters: map[string]interface{}{"diff": diff},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.SnapshotID != "" {
		t.Fatalf("ReverseDiff is a pure text transform and should not create a snapshot")
	}
}

func TestExecute_ValidateSyntax(t *testing.T) {
	_, registry := newTestRegistry(t)

	writeResult := registry.Execute(context.Background(), &ToolCall{
		ID:   "1",
		Name: ToolNameApplyWholeFileEdit,
		Parameters: map[string]interface{}{
			"path":    "main.go",
			"content": "package main\n\nfunc main() {}\n",
		},
	})
	if writeResult.Error != "" {
		t.Fatalf("seed write failed: %s", writeResult.Error)
	}

	result := registry.Execute(context.Background(), &ToolCall{
		ID:         "2",
		Name:       ToolNameValidateSyntax,
		Parameters: map[string]interface{}{"path": "main.go"},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if valid, _ := result.Result["valid"].(bool); !valid {
		t.Fatalf("expected valid=true, got %v", result.Result)
	}
}

func TestExecute_ListAndMergeSnapshots(t *testing.T) {
	ws, registry := newTestRegistry(t)

	for i := 0; i < 2; i++ {
		result := registry.Execute(context.Background(), &ToolCall{
			ID:   "edit",
			Name: ToolNameApplyWholeFileEdit,
			Parameters: map[string]interface{}{
				"path":    "f.txt",
				"content": "v",
			},
		})
		if result.Error != "" {
			t.Fatalf("setup edit failed: %s", result.Error)
		}
	}

	listResult := registry.Execute(context.Background(), &ToolCall{ID: "list", Name: ToolNameListSnapshots})
	if listResult.Error != "" {
		t.Fatalf("unexpected error: %s", listResult.Error)
	}
	snaps, _ := listResult.Result["snapshots"].([]map[string]interface{})
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}

	mergeResult := registry.Execute(context.Background(), &ToolCall{
		ID:   "merge",
		Name: ToolNameConsolidateSnapshots,
		Parameters: map[string]interface{}{
			"start": float64(1),
			"end":   float64(2),
			"title": "squashed",
		},
	})
	if mergeResult.Error != "" {
		t.Fatalf("unexpected error: %s", mergeResult.Error)
	}
	if got := len(ws.Log.List(snapshot.ListOptions{})); got != 1 {
		t.Fatalf("expected consolidation to collapse to 1 snapshot, got %d", got)
	}
}
