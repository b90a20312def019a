package core

import "github.com/pkg/errors"

// FieldError pins a validation message to the form field it concerns.
type FieldError struct {
	Field string
	Error string
}

// ValidationError aggregates the per-field problems of one submitted form.
// The HTTP error handler renders Fields next to their inputs.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks failures the portal cannot run past, such as the session
// store going away. The HTTP error handler spots it and signals main to stop.
type shutdown struct{ message string }

func NewShutdownError(msg string) error { return &shutdown{message: msg} }

func (s *shutdown) Error() string { return s.message }

// IsShutdown reports whether err, however wrapped, calls for a stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
