package services

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, user-facing code attached to every domain error.
// Controllers translate codes to HTTP statuses once, at the boundary; domain
// errors are never retried (they are business-rule violations, not transient
// failures).
type ErrorCode string

const (
	CodeInvalidDate             ErrorCode = "INVALID_DATE"
	CodeResourceUnavailable     ErrorCode = "RESOURCE_UNAVAILABLE"
	CodeDateConflict            ErrorCode = "DATE_CONFLICT"
	CodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeValidationError         ErrorCode = "VALIDATION_ERROR"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeInternalError           ErrorCode = "INTERNAL_ERROR"
)

// DomainError is a typed business failure with a stable code and a specific,
// actionable message.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches two domain errors by code, so errors.Is(err, ErrDateConflict)
// style checks work regardless of message.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidDate             = &DomainError{Code: CodeInvalidDate}
	ErrResourceUnavailable     = &DomainError{Code: CodeResourceUnavailable}
	ErrDateConflict            = &DomainError{Code: CodeDateConflict}
	ErrInvalidStatusTransition = &DomainError{Code: CodeInvalidStatusTransition}
	ErrValidation              = &DomainError{Code: CodeValidationError}
	ErrNotFound                = &DomainError{Code: CodeNotFound}
	ErrInternal                = &DomainError{Code: CodeInternalError}
)

func NewInvalidDate(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeInvalidDate, Message: fmt.Sprintf(format, args...)}
}

func NewResourceUnavailable(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeResourceUnavailable, Message: fmt.Sprintf(format, args...)}
}

func NewDateConflict(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeDateConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStatusTransition(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeInvalidStatusTransition, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeValidationError, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInternalError(err error) *DomainError {
	return &DomainError{Code: CodeInternalError, Message: "an unexpected error occurred", Err: err}
}

// CodeOf extracts the stable code from any error, mapping unexpected errors
// to INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternalError
}
