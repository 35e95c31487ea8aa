package domain

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable category of a domain error. The API layer
// maps each kind to an HTTP status code; callers use it to decide whether
// an operation is worth retrying.
type Kind string

const (
	// KindValidation marks malformed or out-of-range field values.
	// Never retried.
	KindValidation Kind = "validation_error"

	// KindNotFound marks a referenced entity that is missing, deleted
	// or inactive.
	KindNotFound Kind = "not_found"

	// KindConflict marks a business-rule violation: schedule overlap,
	// capacity full, active dependents, cancellation cutoff. Retrying
	// without a state change will fail again.
	KindConflict Kind = "conflict"

	// KindTransient marks lock timeouts and serialization failures.
	// The whole operation is safe to retry.
	KindTransient Kind = "transient"
)

// Error is a domain error with a stable category and, for validation
// failures, per-field detail messages.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Transientf(format string, args ...any) *Error {
	return &Error{Kind: KindTransient, Message: fmt.Sprintf(format, args...)}
}

// Validationf reports a violation on a single field.
func Validationf(field, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind:    KindValidation,
		Message: msg,
		Fields:  map[string]string{field: msg},
	}
}

// ValidationFields reports violations on several fields at once.
func ValidationFields(fields map[string]string) *Error {
	msg := "invalid input"
	for _, v := range fields {
		msg = v
		break
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// KindOf extracts the domain kind from err, or "" when err is not a
// domain error (internal failures stay uncategorized).
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsTransient(err error) bool  { return KindOf(err) == KindTransient }
