package runtime

import (
	"context"
	"strings"
)

// ReadFile returns the file's content, optionally sliced to a 1-indexed
// inclusive line range. A zero StartLine/EndLine in opts means "whole
// file".
func (r *Runtime) ReadFile(ctx context.Context, path string, opts ReadOptions) (string, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return "", err
	}

	exists, err := r.fs.Exists(ctx, abs)
	if err != nil {
		return "", classifyIOErr(path, err)
	}
	if !exists {
		return "", &NotFoundError{Path: path}
	}

	if unsupported, err := r.checkSupported(ctx, abs, path); unsupported {
		return "", err
	}

	data, err := r.fs.ReadFile(ctx, abs)
	if err != nil {
		return "", classifyIOErr(path, err)
	}
	content := string(data)

	if opts.StartLine == 0 && opts.EndLine == 0 {
		return content, nil
	}

	lines := strings.Split(content, "\n")
	start := opts.StartLine
	if start < 1 {
		start = 1
	}
	end := opts.EndLine
	if end == 0 || end > len(lines) {
		end = len(lines)
	}
	if start > end || start > len(lines) {
		return "", &InvalidRangeError{Message: "start_line is beyond end of file"}
	}

	return strings.Join(lines[start-1:end], "\n"), nil
}
