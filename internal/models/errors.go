package models

import "fmt"

// ValidationError reports a model field that failed its local constraint.
// It is returned before any store interaction.
type ValidationError struct {
	// Field is the name of the offending field (e.g. "name", "year").
	Field string

	// Reason is a human-readable explanation suitable for display.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
