package model

import "fmt"

// ValidationError reports an input that violates a field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidStateError reports an entity transition that is illegal in the
// entity's current state (double complete, double delete, re-initializing
// a password).
type InvalidStateError struct {
	Entity string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s", e.Entity, e.Reason)
}

func newInvalidStateError(entity, reason string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Reason: reason}
}
