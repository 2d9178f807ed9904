package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
	ErrCodeBusinessRule        ErrorCode = "CONSULT_VALIDATION_ERROR"
	ErrCodeNotFound            ErrorCode = "CONSULT_NOT_FOUND"
	ErrCodeDatabase            ErrorCode = "DATABASE_ERROR"
)

// Error is the single error type crossing the core's boundaries. Every failure
// carries a machine-readable code and a human-readable message; transports map
// codes to their own status space.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewConstraintViolation(message string) *Error {
	return &Error{Code: ErrCodeConstraintViolation, Message: message}
}

func NewBusinessRule(message string) *Error {
	return &Error{Code: ErrCodeBusinessRule, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message}
}

func NewDatabaseError(message string, cause error) *Error {
	return &Error{Code: ErrCodeDatabase, Message: message, cause: cause}
}

// CodeOf extracts the domain error code, or ErrCodeDatabase for errors that
// escaped from infrastructure without classification.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeDatabase
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsBusinessRule(err error) bool {
	return CodeOf(err) == ErrCodeBusinessRule
}

func IsConstraintViolation(err error) bool {
	return CodeOf(err) == ErrCodeConstraintViolation
}
