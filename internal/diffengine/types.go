// Package diffengine implements the unified-diff dialect patchloom speaks:
// generation from two content strings, parsing of (possibly multi-file)
// diff text, format validation, patch-result classification, and reversal.
// Every function here is a pure text transformation — no package in this
// tree does filesystem I/O; internal/runtime owns that and calls into this
// one for the textual delta.
package diffengine

// LineTag classifies one line inside a hunk.
type LineTag byte

const (
	TagContext LineTag = ' '
	TagAdd     LineTag = '+'
	TagDel     LineTag = '-'
)

// DiffLine is one line of a hunk body.
type DiffLine struct {
	Tag  LineTag
	Text string

	// NoNewlineAfter is set when this line is immediately followed, in the
	// dialect's text form, by the "\ No newline at end of file" sentinel —
	// i.e. this line is the final line of whichever side(s) it belongs to
	// and that side's content does not end in a trailing newline.
	NoNewlineAfter bool
}

// Hunk is one `@@ -OldStart,OldCount +NewStart,NewCount @@` region.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []DiffLine
}

// GitTimestamp holds the optional tab-separated timestamp that may follow
// a `---`/`+++` header path.
type GitTimestamp struct {
	Seconds int64
	// Offset is the signed UTC offset in minutes, rendered as ±HHMM.
	OffsetMinutes int
}

// FileDiff is the diff engine's in-memory representation of one file's
// changes, the unit parse_multi_file_diff splits a diff into and
// generate_unified_diff produces one of.
type FileDiff struct {
	// OldPath/NewPath are the raw header paths as they appear after
	// `--- `/`+++ ` — e.g. "a/main.go" or the literal "/dev/null".
	OldPath string
	NewPath string

	OldTimestamp *GitTimestamp
	NewTimestamp *GitTimestamp

	// GitHashOld/GitHashNew, when non-empty, are the 7-hex short hashes
	// from an `index OLD..NEW 100644` preamble line. GitPath is the path
	// used in the `diff --git a/P b/P` preamble line.
	GitHashOld string
	GitHashNew string
	GitPath    string
	HasGitHash bool

	Hunks []Hunk
}

// ValidationResult is the output of ValidateFormat.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// PatchAnalysis is the output of AnalyzePatchResult.
type PatchAnalysis struct {
	Success        bool
	DetailedError  string
	FailedHunks    int
	TotalDiffLines int
	HunkCount      int
}

// ReverseOptions controls ReverseDiff's file filtering and conflict
// checking.
type ReverseOptions struct {
	IncludeFiles   []string
	ExcludeFiles   []string
	CheckConflicts bool
}

// ReverseResult is the output of ReverseDiff.
type ReverseResult struct {
	Success       bool
	ReversedDiff  string
	AffectedFiles []string
	Conflicts     []string
}

// GitOptions controls the optional git-style preamble and timestamps that
// GenerateOptions.Git may request.
type GitOptions struct {
	IncludeHash     bool
	UseGitTimestamp bool
	// OldHash/NewHash, when set, override the computed short hash.
	OldHash string
	NewHash string
}

// GenerateOptions controls GenerateUnifiedDiff.
type GenerateOptions struct {
	OldPath string
	NewPath string
	// ContextLines is how many unchanged lines surround each hunk. Zero
	// means the package default (3).
	ContextLines int
	Git          *GitOptions
}
