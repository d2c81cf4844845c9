package diffengine

import "github.com/patchloom/patchloom/internal/ptlerr"

// ValidationError reports a diff that fails ValidateFormat or cannot be
// parsed. It always carries ptlerr.KindInvalidDiffFormat.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) ErrKind() ptlerr.Kind {
	return ptlerr.KindInvalidDiffFormat
}

func newValidationError(message string, errors []string) *ValidationError {
	return &ValidationError{Message: message, Errors: errors}
}
