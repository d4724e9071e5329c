package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors returned across the command surface.
type ErrorCode string

const (
	// CodeStorage indicates a backing-store I/O or constraint failure.
	CodeStorage ErrorCode = "STORAGE_ERROR"

	// CodeNotFound indicates a referenced launcher, resource or setting is absent.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeInvalidArgument indicates empty or malformed caller input.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeExternal indicates an open-resource, window or tray collaborator failed.
	CodeExternal ErrorCode = "EXTERNAL_OPERATION_FAILED"

	// CodeSerialization indicates an event payload or settings value failed to parse.
	CodeSerialization ErrorCode = "SERIALIZATION_ERROR"
)

// Error is the structured error every layer returns to its caller.
//
// Op names the failed operation ("create launcher"), Message adds context
// for the reader, Err is the underlying cause (optional).
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Op
	if e.Message != "" {
		if msg != "" {
			msg += ": "
		}
		msg += e.Message
	}
	if e.Err != nil {
		if msg != "" {
			return fmt.Sprintf("%s: %v", msg, e.Err)
		}
		return e.Err.Error()
	}
	if msg == "" {
		return string(e.Code)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// StorageError wraps a backing-store failure.
func StorageError(op string, err error) *Error {
	return &Error{Code: CodeStorage, Op: op, Err: err}
}

// NotFoundError reports a missing entity.
func NotFoundError(op, format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgumentError reports unusable caller input.
func InvalidArgumentError(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

// ExternalError wraps a failure reported by an external collaborator.
func ExternalError(op string, err error) *Error {
	return &Error{Code: CodeExternal, Op: op, Err: err}
}

// SerializationError wraps a parse failure of a payload or settings value.
func SerializationError(op string, err error) *Error {
	return &Error{Code: CodeSerialization, Op: op, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// err carries none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool { return CodeOf(err) == CodeStorage }

// IsInvalidArgument reports whether err is an InvalidArgument error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == CodeInvalidArgument }
