package script_index

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures surfaced to the menu.
type ErrorCode string

const (
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeNotADirectory ErrorCode = "NOT_A_DIRECTORY"
	ErrCodeFilesystem    ErrorCode = "FILESYSTEM"
	ErrCodeNoEnumeration ErrorCode = "NO_ENUMERATION"
	ErrCodeIDExhausted   ErrorCode = "ID_EXHAUSTED"
)

// ScriptError carries a code and an optional underlying cause.
type ScriptError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *ScriptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// NewError creates a ScriptError without a cause.
func NewError(code ErrorCode, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(err error, code ErrorCode, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// GetCode extracts the code of the first ScriptError in the chain.
func GetCode(err error) ErrorCode {
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		return scriptErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}
