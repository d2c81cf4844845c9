package runtime

import (
	"context"
	"strings"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// DeleteFile removes path. Deleting a regular file produces a pre→empty
// diff. Deleting a non-empty directory requires recursive and produces a
// concatenated diff of every regular file beneath it going to empty;
// deleting an empty directory produces no diff.
func (r *Runtime) DeleteFile(ctx context.Context, path string, recursive bool) (*EditResult, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := r.fs.Stat(ctx, abs)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	if !info.IsDir {
		data, _ := r.fs.ReadFile(ctx, abs)
		if err := r.fs.Delete(ctx, abs); err != nil {
			return nil, classifyIOErr(path, err)
		}
		diff := diffengine.Generate(string(data), "", diffengine.GenerateOptions{OldPath: path, NewPath: path})
		return &EditResult{
			Success:        true,
			Message:        "deleted " + path,
			Diff:           diff,
			ChangesApplied: 1,
			AffectedFiles:  []string{path},
		}, nil
	}

	entries, err := r.collectFiles(ctx, abs)
	if err != nil {
		return nil, classifyIOErr(path, err)
	}

	if len(entries) > 0 && !recursive {
		return nil, &UnsupportedError{Path: path, Message: "directory is not empty; recursive deletion was not requested"}
	}

	var diffs []string
	affected := make([]string, 0, len(entries))
	for _, rel := range entries {
		entryAbs := abs + "/" + rel
		data, _ := r.fs.ReadFile(ctx, entryAbs)
		diffs = append(diffs, diffengine.Generate(string(data), "", diffengine.GenerateOptions{OldPath: rel, NewPath: rel}))
		affected = append(affected, rel)
	}

	if err := r.fs.DeleteAll(ctx, abs); err != nil {
		return nil, classifyIOErr(path, err)
	}

	return &EditResult{
		Success:        true,
		Message:        "deleted directory " + path,
		Diff:           strings.Join(diffs, ""),
		ChangesApplied: len(entries),
		AffectedFiles:  affected,
		IsMultiFile:    len(entries) > 1,
	}, nil
}

// CreateDirectory creates path, and its parents if recursive is set.
func (r *Runtime) CreateDirectory(ctx context.Context, path string, recursive bool) (*EditResult, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	if !recursive {
		if err := r.ensureParentDir(ctx, abs); err != nil {
			return nil, err
		}
	}
	if err := r.fs.MkdirAll(ctx, abs, 0o755); err != nil {
		return nil, classifyIOErr(path, err)
	}
	return &EditResult{
		Success:       true,
		Message:       "created directory " + path,
		AffectedFiles: []string{path},
	}, nil
}

// collectFiles walks dir and returns every regular file beneath it, as
// paths relative to dir.
func (r *Runtime) collectFiles(ctx context.Context, dir string) ([]string, error) {
	entries, err := r.fs.ListDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		name := e.Path
		if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
			name = name[idx+1:]
		}
		if e.IsDir {
			sub, err := r.collectFiles(ctx, dir+"/"+name)
			if err != nil {
				return nil, err
			}
			for _, s := range sub {
				out = append(out, name+"/"+s)
			}
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
