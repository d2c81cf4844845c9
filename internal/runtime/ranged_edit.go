package runtime

import (
	"context"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// ApplyRangedEdit replaces the 1-indexed inclusive [start, end] line range
// of path with content; start == end == -1 means append. The file and its
// parent directories are created if absent.
func (r *Runtime) ApplyRangedEdit(ctx context.Context, path, content string, start, end int) (*EditResult, error) {
	if start < 1 && start != -1 {
		return nil, &InvalidRangeError{Message: "start must be >= 1 or -1 for append"}
	}

	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	exists, err := r.fs.Exists(ctx, abs)
	if err != nil {
		return nil, classifyIOErr(path, err)
	}

	var before string
	if exists {
		if unsupported, uerr := r.checkSupported(ctx, abs, path); unsupported {
			return nil, uerr
		}
		data, err := r.fs.ReadFile(ctx, abs)
		if err != nil {
			return nil, classifyIOErr(path, err)
		}
		before = string(data)
	}

	after, err := applyRangeReplace(before, content, start, end)
	if err != nil {
		return nil, err
	}

	if err := r.ensureParentDir(ctx, abs); err != nil {
		return nil, err
	}
	if err := r.fs.WriteFile(ctx, abs, []byte(after)); err != nil {
		return nil, classifyIOErr(path, err)
	}

	diff := diffengine.Generate(before, after, diffengine.GenerateOptions{OldPath: path, NewPath: path})
	return &EditResult{
		Success:        true,
		Message:        "edited " + path,
		Diff:           diff,
		ChangesApplied: 1,
		AffectedFiles:  []string{path},
		SyntaxWarnings: r.validateSyntax(path, after),
	}, nil
}
