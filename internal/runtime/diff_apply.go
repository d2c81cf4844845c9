package runtime

import (
	"context"
	"fmt"

	"github.com/patchloom/patchloom/internal/diffengine"
	"github.com/patchloom/patchloom/internal/logger"
)

// ApplyUnifiedDiff parses diffText as a multi-file unified diff and
// applies each file's hunks relative to opts.BaseDir. It prefers the
// external patch tool when configured and available, falling back to the
// internal hunk applier otherwise.
func (r *Runtime) ApplyUnifiedDiff(ctx context.Context, diffText string, opts ApplyDiffOptions) (*EditResult, error) {
	if v := diffengine.ValidateFormat(diffText); !v.IsValid {
		return nil, &HunkApplicationFailedError{Path: "<multi-file diff>", Message: v.Errors[0]}
	}

	fileDiffs, err := diffengine.ParseMultiFileDiff(diffText)
	if err != nil {
		return nil, &HunkApplicationFailedError{Path: "<multi-file diff>", Message: err.Error()}
	}
	if len(fileDiffs) == 0 {
		return nil, &HunkApplicationFailedError{Path: "<multi-file diff>", Message: "no file headers found in diff"}
	}

	if r.cfg.PreferExternalPatchTool && r.patch.Available() {
		res, applyErr := r.applyViaExternalTool(ctx, diffText, opts)
		if applyErr == nil {
			return res, nil
		}
		logger.WarnFields("external patch tool failed, falling back to internal applier", logger.Fields{
			"op":    "apply_unified_diff",
			"error": applyErr,
		})
	}

	return r.applyViaInternalApplier(ctx, fileDiffs, opts)
}

func (r *Runtime) applyViaExternalTool(ctx context.Context, diffText string, opts ApplyDiffOptions) (*EditResult, error) {
	dir := opts.BaseDir
	if dir == "" {
		dir = r.root
	} else {
		var err error
		dir, err = r.resolve(dir)
		if err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		return nil, fmt.Errorf("external patch tool does not support dry_run")
	}

	res, err := r.patch.Apply(ctx, dir, diffText)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 || res.TimedOut {
		return nil, fmt.Errorf("patch exited %d (timed_out=%v): %s", res.ExitCode, res.TimedOut, res.Stderr)
	}

	return &EditResult{
		Success: true,
		Message: "applied diff via external patch tool",
		Diff:    diffText,
	}, nil
}

func (r *Runtime) applyViaInternalApplier(ctx context.Context, fileDiffs []*diffengine.FileDiff, opts ApplyDiffOptions) (*EditResult, error) {
	perFile := make([]FileResult, 0, len(fileDiffs))
	affected := make([]string, 0, len(fileDiffs))
	var diffs []string
	changesApplied := 0
	allSucceeded := true

	for _, fd := range fileDiffs {
		path := diffengine.ExtractFilePath(fd.OldPath)
		if path == "" {
			path = diffengine.ExtractFilePath(fd.NewPath)
		}
		if opts.BaseDir != "" {
			path = opts.BaseDir + "/" + path
		}

		res, err := r.applyOneFileDiff(ctx, path, fd, opts.DryRun)
		if err != nil {
			allSucceeded = false
			perFile = append(perFile, FileResult{Path: path, Success: false, Message: err.Error()})
			continue
		}

		perFile = append(perFile, FileResult{Path: path, Success: true})
		affected = append(affected, path)
		diffs = append(diffs, res)
		changesApplied++
	}

	message := "applied diff"
	if opts.DryRun {
		message = "dry run: no changes written"
	}
	if !allSucceeded {
		message = "one or more files failed to apply"
	}

	result := &EditResult{
		Success:        allSucceeded,
		Message:        message,
		ChangesApplied: changesApplied,
		AffectedFiles:  affected,
		PerFileResults: perFile,
		IsMultiFile:    len(fileDiffs) > 1,
	}
	for _, d := range diffs {
		result.Diff += d
	}
	return result, nil
}

// applyOneFileDiff applies a single parsed FileDiff against path, handling
// creation (/dev/null old header) and deletion (/dev/null new header).
func (r *Runtime) applyOneFileDiff(ctx context.Context, path string, fd *diffengine.FileDiff, dryRun bool) (string, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return "", err
	}

	exists, err := r.fs.Exists(ctx, abs)
	if err != nil {
		return "", err
	}

	var before string
	if exists {
		data, err := r.fs.ReadFile(ctx, abs)
		if err != nil {
			return "", err
		}
		before = string(data)
	}

	if diffengine.IsFileDeletion(fd) {
		if dryRun {
			return diffengine.Generate(before, "", diffengine.GenerateOptions{OldPath: path, NewPath: path}), nil
		}
		if err := r.fs.Delete(ctx, abs); err != nil {
			return "", err
		}
		return diffengine.Generate(before, "", diffengine.GenerateOptions{OldPath: path, NewPath: path}), nil
	}

	after, err := applyFileDiffInternal(before, fd)
	if err != nil {
		return "", &HunkApplicationFailedError{Path: path, Message: err.Error()}
	}

	if dryRun {
		return diffengine.Generate(before, after, diffengine.GenerateOptions{OldPath: path, NewPath: path}), nil
	}

	if !exists {
		if err := r.ensureParentDir(ctx, abs); err != nil {
			return "", err
		}
	}
	if err := r.fs.WriteFile(ctx, abs, []byte(after)); err != nil {
		return "", err
	}

	return diffengine.Generate(before, after, diffengine.GenerateOptions{OldPath: path, NewPath: path}), nil
}

// ReverseApplyUnifiedDiff reverses diffText then applies it, a convenience
// wrapper matching the spec's reverse_apply_unified_diff.
func (r *Runtime) ReverseApplyUnifiedDiff(ctx context.Context, diffText string, opts ApplyDiffOptions) (*EditResult, error) {
	reversed, err := diffengine.ReverseDiff(diffText, diffengine.ReverseOptions{})
	if err != nil {
		return nil, &HunkApplicationFailedError{Path: "<multi-file diff>", Message: err.Error()}
	}
	return r.ApplyUnifiedDiff(ctx, reversed.ReversedDiff, opts)
}
