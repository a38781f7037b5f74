package library

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book or its cover does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
