package service

import "errors"

// ErrUnauthorized no actor identity was available; checked before any read
// or write on every mutating operation.
var ErrUnauthorized = errors.New("unauthorized: no actor identity")

// ValidationError names the first missing or invalid field of a request.
// Validation runs before any mutation, so a validation failure never leaves
// partial state behind.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field
}

func validationErr(field string) error {
	return &ValidationError{Field: field}
}
