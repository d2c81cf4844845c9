// Package ptlerr defines the error-kind vocabulary shared across
// patchloom's packages. Each package keeps its own typed error struct (for
// example diffengine.ValidationError, runtime.NotFoundError,
// snapshot.ConflictError); this package only collects the stable Kind
// strings those structs carry, so a caller several layers up the stack can
// classify a failure without importing every package that can produce one.
package ptlerr

// Kind classifies why an operation failed.
type Kind string

const (
	KindInvalidPath            Kind = "invalid_path"
	KindPathOutsideWorkspace   Kind = "path_outside_workspace"
	KindInvalidRange           Kind = "invalid_range"
	KindInvalidDiffFormat      Kind = "invalid_diff_format"
	KindUnknownTool            Kind = "unknown_tool"
	KindFileNotFound           Kind = "file_not_found"
	KindSearchBlockNotFound    Kind = "search_block_not_found"
	KindSnapshotNotFound       Kind = "snapshot_not_found"
	KindExternalChangeConflict Kind = "external_change_conflict"
	KindHunkApplicationFailed  Kind = "hunk_application_failed"
	KindIOError                Kind = "io_error"
	KindPermissionDenied       Kind = "permission_denied"
	KindPatchToolTimeout       Kind = "patch_tool_timeout"
	KindPatchToolUnavailable   Kind = "patch_tool_unavailable"
	KindSequenceCorruption     Kind = "sequence_corruption"
	KindUnsupported            Kind = "unsupported"
)

// Error is a minimal typed error carrying a Kind plus an optional wrapped
// cause, the same shape each package's own error struct follows
// (diffengine.ValidationError, runtime.NotFoundError, ...). Packages that
// need extra fields (a path, a line number) define their own struct
// instead of embedding this one; Error exists for call sites that only need
// to classify-and-wrap without a bespoke type.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error with the given kind, message, and wrapped cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps)
// implements an interface exposing one; otherwise returns "".
func KindOf(err error) Kind {
	for err != nil {
		if k, ok := err.(interface{ ErrKind() Kind }); ok {
			return k.ErrKind()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ""
}

// ErrKind implements the interface KindOf looks for.
func (e *Error) ErrKind() Kind {
	return e.Kind
}
