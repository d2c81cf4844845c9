// Package runtime implements the file-editing primitives (§4.2): whole-file
// write, search/replace block edit, line-range edit, unified-diff
// apply/reverse, delete. Every mutating operation returns an EditResult and
// is total — filesystem and validation failures are reported in the
// result, never raised as control flow.
package runtime

import "github.com/patchloom/patchloom/internal/diffengine"

// EditResult is the outcome of one runtime operation.
type EditResult struct {
	Success        bool
	Message        string
	Diff           string
	ChangesApplied int
	AffectedFiles  []string
	PerFileResults []FileResult

	// IsMultiFile is set by ApplyUnifiedDiff/ReverseApplyUnifiedDiff when
	// the diff touched more than one file.
	IsMultiFile bool

	// SyntaxWarnings carries non-blocking syntax-validation diagnostics
	// from internal/syntax; a non-empty value never changes Success.
	SyntaxWarnings []string
}

// FileResult is one file's outcome inside a multi-file operation.
type FileResult struct {
	Path    string
	Success bool
	Message string
}

// WriteMode selects write_file's behavior.
type WriteMode string

const (
	ModeOverwrite         WriteMode = "overwrite"
	ModeAppend            WriteMode = "append"
	ModeCreateOrOverwrite WriteMode = "create_or_overwrite"
	ModeOverwriteRange    WriteMode = "overwrite_range"
)

// WriteOptions controls WriteFile.
type WriteOptions struct {
	Mode WriteMode
	// RangeStart/RangeEnd apply only to ModeOverwriteRange; 1-indexed
	// inclusive, RangeEnd == -1 means end-of-file.
	RangeStart int
	RangeEnd   int
}

// ReadOptions controls ReadFile.
type ReadOptions struct {
	// StartLine/EndLine select a 1-indexed inclusive line slice; zero
	// values mean "whole file".
	StartLine int
	EndLine   int
}

// ApplyDiffOptions controls ApplyUnifiedDiff.
type ApplyDiffOptions struct {
	BaseDir      string
	DryRun       bool
	SaveDiffPath string
}

// GenerateDiffOptions controls GenerateDiff/CompareFiles.
type GenerateDiffOptions struct {
	ContextLines int
	Git          *diffengine.GitOptions
}
