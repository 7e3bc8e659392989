package ollapdf

import (
	"errors"
	"fmt"
)

// Application error codes. These are portable across transports: the HTTP
// layer maps them to status codes and the CLI maps them to user messages.
const (
	ECANCELED    = "canceled"     // request canceled by the caller
	ECONFLICT    = "conflict"     // resource already exists
	EINTERNAL    = "internal"     // unexpected internal error
	EINVALID     = "invalid"      // validation failed
	ENOTFOUND    = "not_found"    // resource does not exist
	EQUEUEFULL   = "queue_full"   // admission rejected, queue at capacity
	ETIMEOUT     = "timeout"      // request timed out while waiting
	EUNAVAILABLE = "unavailable"  // dependency or subsystem unavailable
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ollapdf error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code, or EINTERNAL for non-application
// errors. Returns an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message. Non-application errors
// report a generic message so internal details never leak to end users.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
