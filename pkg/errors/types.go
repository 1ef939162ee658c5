package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Request validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Revision and session errors
	ErrCodeRollbackDenied   ErrorCode = "ROLLBACK_DENIED"
	ErrCodeAlreadyRunning   ErrorCode = "ALREADY_RUNNING"
	ErrCodeCommitInProgress ErrorCode = "COMMIT_IN_PROGRESS"
	ErrCodeJobFailed        ErrorCode = "JOB_FAILED"

	// Infrastructure errors
	ErrCodeTransport ErrorCode = "TRANSPORT"
	ErrCodeDatabase  ErrorCode = "DATABASE"
	ErrCodeInternal  ErrorCode = "INTERNAL"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// getDefaultHTTPCode returns the default HTTP status code for an error code
func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict, ErrCodeAlreadyRunning, ErrCodeCommitInProgress:
		return http.StatusConflict
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField:
		return http.StatusBadRequest
	case ErrCodeRollbackDenied:
		return http.StatusUnprocessableEntity
	case ErrCodeJobFailed:
		return http.StatusBadGateway
	case ErrCodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeFromHTTP maps an HTTP status code back onto an error code. Used by
// clients decoding responses whose body carries no structured error.
func CodeFromHTTP(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeValidation
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrCodeRollbackDenied
	default:
		return ErrCodeInternal
	}
}

// Common error constructors

// Validation creates a field validation error
func Validation(field string, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// MissingField creates a missing field error
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("required field '%s' is missing", field)).
		WithDetail("field", field)
}

// NotFound creates a not found error
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// Conflict creates a stale-write conflict error
func Conflict(expectedVersion, currentVersion int) *AppError {
	return New(ErrCodeConflict, fmt.Sprintf("version %d is stale, current version is %d", expectedVersion, currentVersion)).
		WithDetail("expected_version", expectedVersion).
		WithDetail("current_version", currentVersion)
}

// RollbackDenied creates a rollback eligibility error
func RollbackDenied(versionID string, reason string) *AppError {
	return New(ErrCodeRollbackDenied, fmt.Sprintf("cannot roll back to version %s: %s", versionID, reason)).
		WithDetail("version_id", versionID).
		WithDetail("reason", reason)
}

// AlreadyRunning creates an error for a duplicate reprocess request
func AlreadyRunning(reelID string) *AppError {
	return New(ErrCodeAlreadyRunning, fmt.Sprintf("reprocessing already running for reel %s", reelID)).
		WithDetail("reel_id", reelID)
}

// CommitInProgress creates an error for overlapping commits on one concern
func CommitInProgress(concern string) *AppError {
	return New(ErrCodeCommitInProgress, fmt.Sprintf("a %s commit is already in flight", concern)).
		WithDetail("concern", concern)
}

// JobFailed creates an error for a terminally failed reprocess job
func JobFailed(jobID string, message string) *AppError {
	return New(ErrCodeJobFailed, fmt.Sprintf("reprocess job %s failed: %s", jobID, message)).
		WithDetail("job_id", jobID)
}

// Transport creates a network-level error, generally retryable by the caller
func Transport(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeTransport, fmt.Sprintf("transport failure during %s", operation)).
		WithDetail("operation", operation)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabase, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// Is checks if an error carries a specific code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
