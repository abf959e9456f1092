package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "Task not found")
	ErrHabitNotFound    = NewError(ErrCodeNotFound, "Habit not found")
	ErrPlanNotFound     = NewError(ErrCodeNotFound, "Plan not found")
	ErrReminderNotFound = NewError(ErrCodeNotFound, "Reminder not found")
	ErrEntryNotFound    = NewError(ErrCodeNotFound, "Entry not found")
	ErrNoteNotFound     = NewError(ErrCodeNotFound, "Note not found")
	ErrCommentNotFound  = NewError(ErrCodeNotFound, "Comment not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "Unauthorized")
	ErrForbidden        = NewError(ErrCodeForbidden, "Forbidden")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrEmailTaken       = NewError(ErrCodeConflict, "Email already in use")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// BatchMissingError reports the ids a batch status update could not resolve.
// The batch is rejected as a whole; the transport layer surfaces the ids in
// a dedicated `missing` response field.
type BatchMissingError struct {
	IDs []string
}

func (e *BatchMissingError) Error() string {
	return fmt.Sprintf("Some tasks not found: %s", strings.Join(e.IDs, ", "))
}
