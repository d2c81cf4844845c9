package runtime

import (
	"context"
	"path/filepath"

	"github.com/patchloom/patchloom/internal/config"
	"github.com/patchloom/patchloom/internal/fs"
	"github.com/patchloom/patchloom/internal/ptlerr"
	"github.com/patchloom/patchloom/internal/runtime/patchtool"
	"github.com/patchloom/patchloom/internal/syntax"
)

// Runtime wires the file-editing primitives to a concrete filesystem, a
// workspace root paths are resolved against, and the ambient services
// (syntax validation, external patch tool) operations may consult.
type Runtime struct {
	fs        fs.FileSystem
	root      string
	cfg       *config.Config
	validator *syntax.Validator
	patch     *patchtool.Runner
}

// New constructs a Runtime rooted at root, backed by filesystem.
func New(filesystem fs.FileSystem, root string, cfg *config.Config) *Runtime {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runtime{
		fs:        filesystem,
		root:      filepath.Clean(root),
		cfg:       cfg,
		validator: syntax.NewValidator(),
		patch:     patchtool.NewRunner(cfg.PatchTimeoutSeconds),
	}
}

// resolve joins path against the runtime's root if it isn't already
// absolute. Workspace containment is enforced earlier by
// internal/workspace.Resolve; the runtime only needs an absolute path to
// hand to fs.FileSystem.
func (r *Runtime) resolve(path string) (string, error) {
	if path == "" {
		return "", ptlerr.New(ptlerr.KindInvalidPath, "empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(r.root, path), nil
}

// checkSupported rejects symlinks and files that look binary, per the
// unsupported-content open question. unsupported is true only when err is
// non-nil and the caller should stop.
func (r *Runtime) checkSupported(ctx context.Context, abs, displayPath string) (unsupported bool, err error) {
	info, statErr := r.fs.Stat(ctx, abs)
	if statErr != nil {
		return false, nil
	}
	if info.IsDir {
		return true, &UnsupportedError{Path: displayPath, Message: "is a directory"}
	}
	if isSymlink(abs) {
		return true, &UnsupportedError{Path: displayPath, Message: "symlinks are not supported"}
	}
	data, readErr := r.fs.ReadFile(ctx, abs)
	if readErr != nil {
		return false, nil
	}
	if isLikelyBinary(displayPath, data) {
		return true, &UnsupportedError{Path: displayPath, Message: "binary content is not supported"}
	}
	return false, nil
}

// validateSyntax runs non-blocking syntax validation for path/content,
// returning human-readable warnings. A nil or empty return means either
// validation isn't supported for the language or no errors were found.
func (r *Runtime) validateSyntax(path, content string) []string {
	language := syntax.DetectLanguage(path)
	if language == "" || !syntax.IsValidationSupported(language) {
		return nil
	}
	result, err := r.validator.Validate(content, language)
	if err != nil || result.Valid {
		return nil
	}
	warnings := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		warnings = append(warnings, e.Message)
	}
	return warnings
}

// ValidateFile checks the on-disk syntax of path without mutating
// anything, for callers (the ValidateSyntax tool) that want to lint a
// file before attempting an edit rather than after one. Unlike
// validateSyntax, which validates content already held in memory from a
// just-completed write, this reads path fresh off the workspace
// filesystem, so it goes through syntax.Validator's own ValidateFile
// convenience method instead of the lower-level Validate.
func (r *Runtime) ValidateFile(ctx context.Context, path string) (*syntax.ValidationResult, error) {
	abs, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	result, err := r.validator.ValidateFile(ctx, func(ctx context.Context, p string) ([]byte, error) {
		return r.fs.ReadFile(ctx, p)
	}, abs)
	if err != nil {
		return nil, &UnsupportedError{Path: path, Message: err.Error()}
	}
	return result, nil
}
