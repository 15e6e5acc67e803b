package errors

import "net/http"

// Kind classifies an AppError independently of its message.
type Kind string

const (
	KindNotFound              Kind = "NOT_FOUND"
	KindDuplicateRelationship Kind = "DUPLICATE_RELATIONSHIP"
	KindConflict              Kind = "CONFLICT"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindForbidden             Kind = "FORBIDDEN"
	KindInvalidRequest        Kind = "INVALID_REQUEST"
	KindRateLimited           Kind = "RATE_LIMITED"
	KindInternal              Kind = "INTERNAL"
)

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target is an AppError of the same kind, so callers can
// write errors.Is(err, ErrNotFound) regardless of the message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewAppError creates a new AppError
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest        = NewAppError(http.StatusBadRequest, KindInvalidRequest, "Invalid request parameters")
	ErrUnauthorized          = NewAppError(http.StatusUnauthorized, KindUnauthorized, "Unauthorized access")
	ErrForbidden             = NewAppError(http.StatusForbidden, KindForbidden, "Access denied")
	ErrNotFound              = NewAppError(http.StatusNotFound, KindNotFound, "Resource not found")
	ErrConflict              = NewAppError(http.StatusConflict, KindConflict, "Resource already exists")
	ErrDuplicateRelationship = NewAppError(http.StatusConflict, KindDuplicateRelationship, "Friend request already exists")
	ErrInternalServer        = NewAppError(http.StatusInternalServerError, KindInternal, "Internal server error")
	ErrRateLimit             = NewAppError(http.StatusTooManyRequests, KindRateLimited, "Rate limit exceeded")
)

// Helper functions to create specific errors
func BadRequest(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidRequest, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, msg)
}

func Conflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, msg)
}

func DuplicateRelationship(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindDuplicateRelationship, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, msg)
}
