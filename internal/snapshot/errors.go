package snapshot

import (
	"fmt"

	"github.com/patchloom/patchloom/internal/ptlerr"
)

// ConflictError reports that a strict mode forbids the divergence an
// operation just observed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string       { return e.Message }
func (e *ConflictError) ErrKind() ptlerr.Kind { return ptlerr.KindExternalChangeConflict }

// NotFoundError reports a lookup by id or sequence number that found
// nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string       { return e.Message }
func (e *NotFoundError) ErrKind() ptlerr.Kind { return ptlerr.KindSnapshotNotFound }

// InvalidRangeError reports a consolidation range that is empty or
// out-of-bounds.
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string       { return e.Message }
func (e *InvalidRangeError) ErrKind() ptlerr.Kind { return ptlerr.KindInvalidRange }

func newInvalidRangeError(start, end, n int) *InvalidRangeError {
	return &InvalidRangeError{Message: fmt.Sprintf("invalid consolidation range [%d,%d] for a log of %d snapshots", start, end, n)}
}

// SequenceCorruptionError is fatal for the current Log instance: a sanity
// check on the linked sequence failed.
type SequenceCorruptionError struct {
	Message string
}

func (e *SequenceCorruptionError) Error() string       { return e.Message }
func (e *SequenceCorruptionError) ErrKind() ptlerr.Kind { return ptlerr.KindSequenceCorruption }
