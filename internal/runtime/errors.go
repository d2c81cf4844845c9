package runtime

import (
	"os"

	"github.com/patchloom/patchloom/internal/ptlerr"
)

// NotFoundError reports a read/edit against a file that doesn't exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string       { return "file not found: " + e.Path }
func (e *NotFoundError) ErrKind() ptlerr.Kind { return ptlerr.KindFileNotFound }

// PermissionError wraps an os.PermissionError-classified failure.
type PermissionError struct {
	Path  string
	Cause error
}

func (e *PermissionError) Error() string       { return "permission denied: " + e.Path + ": " + e.Cause.Error() }
func (e *PermissionError) Unwrap() error       { return e.Cause }
func (e *PermissionError) ErrKind() ptlerr.Kind { return ptlerr.KindPermissionDenied }

// IOError wraps an otherwise-unclassified filesystem failure.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string       { return "io error: " + e.Path + ": " + e.Cause.Error() }
func (e *IOError) Unwrap() error       { return e.Cause }
func (e *IOError) ErrKind() ptlerr.Kind { return ptlerr.KindIOError }

// InvalidRangeError reports an invalid start/end line range.
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string       { return e.Message }
func (e *InvalidRangeError) ErrKind() ptlerr.Kind { return ptlerr.KindInvalidRange }

// SearchBlockNotFoundError reports apply_edit_block finding no occurrence
// of the search text.
type SearchBlockNotFoundError struct {
	Path string
}

func (e *SearchBlockNotFoundError) Error() string       { return "search block not found in " + e.Path }
func (e *SearchBlockNotFoundError) ErrKind() ptlerr.Kind { return ptlerr.KindSearchBlockNotFound }

// UnsupportedError reports a symlink or binary file rejected per §9's
// open question.
type UnsupportedError struct {
	Path    string
	Message string
}

func (e *UnsupportedError) Error() string       { return e.Path + ": " + e.Message }
func (e *UnsupportedError) ErrKind() ptlerr.Kind { return ptlerr.KindUnsupported }

// HunkApplicationFailedError reports a unified-diff hunk that could not be
// matched against the current file content.
type HunkApplicationFailedError struct {
	Path    string
	Message string
}

func (e *HunkApplicationFailedError) Error() string       { return e.Path + ": " + e.Message }
func (e *HunkApplicationFailedError) ErrKind() ptlerr.Kind { return ptlerr.KindHunkApplicationFailed }

func classifyIOErr(path string, err error) error {
	if err == nil {
		return nil
	}
	if os.IsPermission(err) {
		return &PermissionError{Path: path, Cause: err}
	}
	return &IOError{Path: path, Cause: err}
}
