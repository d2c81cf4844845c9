package tools

import (
	"context"

	"github.com/patchloom/patchloom/internal/runtime"
	"github.com/patchloom/patchloom/internal/snapshot"
	"github.com/patchloom/patchloom/internal/workspace"
)

// readCurrent adapts a Workspace's Runtime into a snapshot.FileRead: a
// NotFoundError reads as "doesn't exist" rather than an error.
func readCurrent(ws *workspace.Workspace) snapshot.FileRead {
	return func(path string) (string, bool, error) {
		content, err := ws.Runtime.ReadFile(context.Background(), path, runtime.ReadOptions{})
		if err != nil {
			if _, ok := err.(*runtime.NotFoundError); ok {
				return "", false, nil
			}
			return "", false, err
		}
		return content, true, nil
	}
}

// snapshotMutation records a CreateSnapshot around a single-path mutation:
// mutate performs the filesystem change (ignoring the diff it computes —
// the snapshot log computes its own pre/post diff independently) and
// returns the tool-facing EditResult on success.
func snapshotMutation(ws *workspace.Workspace, toolName string, paths []string, mutate func() (*runtime.EditResult, error)) (*runtime.EditResult, *snapshot.Snapshot, error) {
	var editResult *runtime.EditResult

	snap, err := ws.Log.CreateSnapshot(snapshot.CreateSnapshotRequest{
		Tool:          toolName,
		AffectedFiles: paths,
		ReadCurrent:   readCurrent(ws),
		Mutate: func() error {
			res, err := mutate()
			if err != nil {
				return err
			}
			editResult = res
			return nil
		},
		ReadPost: readCurrent(ws),
	})
	if err != nil {
		return nil, nil, err
	}
	return editResult, snap, nil
}
