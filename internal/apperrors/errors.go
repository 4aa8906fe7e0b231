// Package apperrors holds the error taxonomy shared by the store, the
// services and the HTTP boundary.
package apperrors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed input. Fields maps a field path such as
// "vin" or "inventory[1].quantity" to every message collected for it.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records one message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ReferenceError reports an id in the request that resolves to nothing.
type ReferenceError struct {
	Field string
	ID    uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Field, e.ID)
}

// NotFoundError reports that the primary entity of an operation is missing.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness or dependency violation.
type ConflictError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}

// AuthError reports a missing, invalid or expired credential, or a failed
// login.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}
