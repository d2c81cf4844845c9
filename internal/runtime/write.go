package runtime

import (
	"context"
	"strings"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// WriteFile writes content to path under opts.Mode, returning the
// generated diff against whatever the file previously contained (empty
// for a create).
func (r *Runtime) WriteFile(ctx context.Context, path, content string, opts WriteOptions) (*EditResult, error) {
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

	appendedToExisting := false
	var after string
	switch opts.Mode {
	case ModeAppend:
		after = before + content
		appendedToExisting = exists

	case ModeOverwriteRange:
		after, err = applyRangeReplace(before, content, opts.RangeStart, opts.RangeEnd)
		if err != nil {
			return nil, err
		}

	case ModeOverwrite, ModeCreateOrOverwrite, "":
		if opts.Mode == ModeOverwrite && !exists {
			return nil, &NotFoundError{Path: path}
		}
		after = content

	default:
		after = content
	}

	if err := r.ensureParentDir(ctx, abs); err != nil {
		return nil, err
	}
	if err := r.fs.WriteFile(ctx, abs, []byte(after)); err != nil {
		return nil, classifyIOErr(path, err)
	}

	var diff string
	if !appendedToExisting {
		diff = diffengine.Generate(before, after, diffengine.GenerateOptions{OldPath: path, NewPath: path})
	}

	return &EditResult{
		Success:        true,
		Message:        "wrote " + path,
		Diff:           diff,
		ChangesApplied: 1,
		AffectedFiles:  []string{path},
		SyntaxWarnings: r.validateSyntax(path, after),
	}, nil
}

// applyRangeReplace replaces the 1-indexed inclusive [start, end] line
// range of before with replacement, padding with blank lines if start is
// beyond the current length. start == end == -1 means append.
func applyRangeReplace(before, replacement string, start, end int) (string, error) {
	if start == -1 && end == -1 {
		if before == "" {
			return replacement, nil
		}
		return before + "\n" + replacement, nil
	}
	if start < 1 {
		return "", &InvalidRangeError{Message: "start_line must be >= 1"}
	}

	var lines []string
	if before != "" {
		lines = strings.Split(before, "\n")
	}

	for start-1 > len(lines) {
		lines = append(lines, "")
	}

	e := end
	if end == -1 {
		e = len(lines)
	} else if e < start {
		e = start
	}
	if e > len(lines) {
		e = len(lines)
	}

	var replacementLines []string
	if replacement != "" {
		replacementLines = strings.Split(replacement, "\n")
	}

	result := make([]string, 0, len(lines)+len(replacementLines))
	result = append(result, lines[:start-1]...)
	result = append(result, replacementLines...)
	if e < len(lines) {
		result = append(result, lines[e:]...)
	}

	return strings.Join(result, "\n"), nil
}

func (r *Runtime) ensureParentDir(ctx context.Context, absPath string) error {
	dir := parentDir(absPath)
	if dir == "" {
		return nil
	}
	if err := r.fs.MkdirAll(ctx, dir, 0o755); err != nil {
		return classifyIOErr(dir, err)
	}
	return nil
}
