package models

import "fmt"

// ValidationError reports a value that violates one of the habit field rules.
// It is the only recoverable error the model layer returns.
type ValidationError struct {
	Field  string
	Reason string
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
