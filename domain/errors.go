package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable identifier clients receive in the GraphQL error extensions.
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalid      ErrorCode = "BAD_USER_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_SERVER_ERROR"

	ErrCodeTaskNotFound       ErrorCode = "TASK_NOT_FOUND"
	ErrCodeTaskFetchFailed    ErrorCode = "TASK_FETCH_FAILED"
	ErrCodeTaskCreationFailed ErrorCode = "TASK_CREATION_FAILED"
	ErrCodeTaskUpdateFailed   ErrorCode = "TASK_UPDATE_FAILED"
	ErrCodeTaskDeletionFailed ErrorCode = "TASK_DELETION_FAILED"

	ErrCodeTaskStatusNotFound       ErrorCode = "TASK_STATUS_NOT_FOUND"
	ErrCodeTaskStatusCreationFailed ErrorCode = "TASK_STATUS_CREATION_FAILED"
	ErrCodeTaskStatusFetchFailed    ErrorCode = "TASK_STATUS_FETCH_FAILED"

	ErrCodeUserRegistrationFailed ErrorCode = "USER_REGISTRATION_FAILED"
	ErrCodeUserLoginFailed        ErrorCode = "USER_LOGIN_FAILED"
	ErrCodeUserLogoutFailed       ErrorCode = "USER_LOGOUT_FAILED"
	ErrCodeUserNotFound           ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserUpdateFailed       ErrorCode = "USER_UPDATE_FAILED"

	ErrCodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	ErrCodeUploadURLFailed ErrorCode = "UPLOAD_URL_FAILED"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
)

// Error represents a domain-level error. Message is safe to show to clients,
// Err carries the underlying cause for logs only.
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

// Is matches another *Error by code, so wrapped sentinels compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
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

// Invalid reports a validation failure with a client-facing message.
func Invalid(format string, args ...interface{}) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf(format, args...))
}

// Common domain errors.
var (
	ErrUserNotFound       = NewError(ErrCodeUserNotFound, "user not found")
	ErrEmailTaken         = NewError(ErrCodeUserRegistrationFailed, "a user with the given email is already registered")
	ErrLoginFailed        = NewError(ErrCodeUserLoginFailed, "invalid email or password")
	ErrTaskNotFound       = NewError(ErrCodeTaskNotFound, "task not found")
	ErrTaskStatusNotFound = NewError(ErrCodeTaskStatusNotFound, "task status not found")
	ErrStatusLabelTaken   = NewError(ErrCodeTaskStatusCreationFailed, "a task status with the given label already exists")
	ErrSessionNotFound    = NewError(ErrCodeSessionNotFound, "session not found")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized access, please log in")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// AsDomainError returns the outermost domain error in the chain, if any.
func AsDomainError(err error) (*Error, bool) {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}
