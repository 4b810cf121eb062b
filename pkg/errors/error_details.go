package errors

import "github.com/pkg/errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	Message string

	// Code (required) is the error code, one of the ErrorCode values.
	Code string

	// Field (optional) is the related field or operation the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether err, or any error it wraps, is an
// ErrorDetails with the given code.
func ErrorCodeEquals(err error, code string) bool {
	var errDetails *ErrorDetails
	if !errors.As(err, &errDetails) {
		return false
	}

	return errDetails.Code == code
}
