package errorbank

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind enumerates the error categories the ordering service distinguishes.
type Kind string

const (
	// KindValidation marks caller-correctable input violations. Never a server fault.
	KindValidation Kind = "validation"
	// KindConnection marks an unreachable or exhausted storage pool.
	KindConnection Kind = "connection"
	// KindCreate marks statement-level failures on create/list paths.
	KindCreate Kind = "create"
	// KindDetail marks statement-level failures on the detail path, kept separate
	// so detail failures are distinguishable from create/list failures in logs.
	KindDetail Kind = "detail"
	// KindNotFound marks a legitimate empty result for detail/delete.
	KindNotFound Kind = "not_found"
	// KindInternal is the catch-all for everything else.
	KindInternal Kind = "internal"
)

// AppError carries an error kind plus enough context for logging while exposing
// only the coarse kind and message to callers.
type AppError struct {
	kind    Kind
	message string
	field   string
	cause   error
}

// Option mutates an AppError during construction.
type Option func(*AppError)

// WithCause attaches the underlying driver or pool error.
func WithCause(err error) Option {
	return func(appErr *AppError) {
		appErr.cause = err
	}
}

// WithField names the request field a validation error refers to.
func WithField(field string) Option {
	return func(appErr *AppError) {
		appErr.field = field
	}
}

// New constructs an AppError with the supplied kind and message.
func New(kind Kind, message string, opts ...Option) *AppError {
	if message == "" {
		message = string(kind)
	}
	appErr := &AppError{kind: kind, message: message}
	for _, opt := range opts {
		opt(appErr)
	}
	return appErr
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Kind returns the error category.
func (e *AppError) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.kind
}

// Message returns the human-readable message.
func (e *AppError) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Field returns the offending request field, when known.
func (e *AppError) Field() string {
	if e == nil {
		return ""
	}
	return e.field
}

// StatusCode resolves the HTTP status for the error kind. Every storage-side
// kind collapses to 500; the caller never learns which statement failed.
func (e *AppError) StatusCode() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps the error kind onto a gRPC status code.
func (e *AppError) GRPCCode() codes.Code {
	if e == nil {
		return codes.Internal
	}
	switch e.kind {
	case KindValidation:
		return codes.InvalidArgument
	case KindConnection:
		return codes.Unavailable
	case KindNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

// Validation constructs a 400 error for an out-of-range input.
func Validation(message string, opts ...Option) *AppError {
	return New(KindValidation, message, opts...)
}

// Connection constructs an error for pool exhaustion or unreachable storage.
func Connection(message string, opts ...Option) *AppError {
	return New(KindConnection, message, opts...)
}

// Create constructs an error for a failed create/list statement.
func Create(message string, opts ...Option) *AppError {
	return New(KindCreate, message, opts...)
}

// Detail constructs an error for a failed detail statement.
func Detail(message string, opts ...Option) *AppError {
	return New(KindDetail, message, opts...)
}

// NotFound constructs a 404 outcome.
func NotFound(message string, opts ...Option) *AppError {
	return New(KindNotFound, message, opts...)
}

// Internal constructs a generic 500 error.
func Internal(message string, opts ...Option) *AppError {
	return New(KindInternal, message, opts...)
}

// From returns an AppError for any error input, wrapping unexpected values.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal error", WithCause(err))
}
