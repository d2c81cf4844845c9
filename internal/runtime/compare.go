package runtime

import (
	"context"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// GenerateDiff renders a unified diff between two content strings; the
// paths are used only for the diff's file headers.
func (r *Runtime) GenerateDiff(oldPath, newPath, oldContent, newContent string, opts GenerateDiffOptions) string {
	return diffengine.Generate(oldContent, newContent, diffengine.GenerateOptions{
		OldPath:      oldPath,
		NewPath:      newPath,
		ContextLines: opts.ContextLines,
		Git:          opts.Git,
	})
}

// CompareFiles reads two files from the workspace and returns their
// unified diff.
func (r *Runtime) CompareFiles(ctx context.Context, pathA, pathB string, opts GenerateDiffOptions) (string, error) {
	absA, err := r.resolve(pathA)
	if err != nil {
		return "", err
	}
	absB, err := r.resolve(pathB)
	if err != nil {
		return "", err
	}

	var contentA, contentB string
	if exists, _ := r.fs.Exists(ctx, absA); exists {
		data, err := r.fs.ReadFile(ctx, absA)
		if err != nil {
			return "", classifyIOErr(pathA, err)
		}
		contentA = string(data)
	}
	if exists, _ := r.fs.Exists(ctx, absB); exists {
		data, err := r.fs.ReadFile(ctx, absB)
		if err != nil {
			return "", classifyIOErr(pathB, err)
		}
		contentB = string(data)
	}

	return r.GenerateDiff(pathA, pathB, contentA, contentB, opts), nil
}
