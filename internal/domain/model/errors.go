package model

import "fmt"

// ValidationError reports malformed or invariant-violating input. It is
// raised before any computation starts; a contract that fails validation is
// never partially analyzed.
type ValidationError struct {
	Field   string
	Message string
	// Index identifies the offending element for sequence fields
	// (cash_flows, fees); -1 when not applicable.
	Index int
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation failed: %s[%d]: %s", e.Field, e.Index, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a scalar field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Index: -1}
}

// NewIndexedValidationError creates a ValidationError for one element of a
// sequence field.
func NewIndexedValidationError(field string, index int, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Index: index}
}
