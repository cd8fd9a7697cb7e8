package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks input the caller must fix
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a write that collides with an existing relationship
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a lookup for an identifier that does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError describes rejected input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MissingColumns builds the validation error for an upload lacking required columns
func MissingColumns(cols []string) *ValidationError {
	return &ValidationError{Field: "columns", Reason: "missing required columns: " + strings.Join(cols, ", ")}
}

// NotFoundError names the identifier that could not be resolved
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError describes a pair that is already classified
type ConflictError struct {
	CaresID    int64
	EvictionID string
	Existing   RelationshipType
}

func (e *ConflictError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("conflict: eviction %q and property %d already have a %s relationship", e.EvictionID, e.CaresID, e.Existing)
	}
	return fmt.Sprintf("conflict: eviction %q and property %d already have a relationship", e.EvictionID, e.CaresID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
