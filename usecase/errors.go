package usecase

import "errors"

var (
	// ErrLimitReached signals a free-tier quota exhaustion; handlers map it
	// to 429 (refreshes) or 403 (library limits).
	ErrLimitReached = errors.New("limit_reached")
	// ErrForbidden signals the resource belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound signals the resource does not exist.
	ErrNotFound = errors.New("not_found")
)

// ValidationError carries per-field messages for a rejected payload. No
// partial write happens when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
