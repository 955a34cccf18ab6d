// Package validation holds the input error shared by every tool.
package validation

import "errors"

// Error reports a required input that is missing or unusable. It is the only
// error the tools return; malformed but present input is absorbed by the
// tools themselves.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// New returns a validation error for field.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Is reports whether err is, or wraps, a validation error.
func Is(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
