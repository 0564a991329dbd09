package roster

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrValidation = errors.New("roster: validation failed")
	ErrProtected  = errors.New("roster: protected entry")
	ErrOutOfRange = errors.New("roster: index out of range")
	ErrNotFound   = errors.New("roster: contact not found")
)

// ValidationError reports a required field that is missing or malformed.
type ValidationError struct {
	Field  string // "name", "phone" or "email".
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roster: invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ProtectedEntryError reports an edit or removal aimed at the reserved entry.
type ProtectedEntryError struct {
	Index int
	Op    string // "edit" or "remove".
	Name  string // Display name of the protected entry, when known.
}

func (e *ProtectedEntryError) Error() string {
	return fmt.Sprintf("roster: cannot %s protected entry at position %d", e.Op, e.Index)
}

// Is matches ErrProtected.
func (e *ProtectedEntryError) Is(target error) bool {
	return target == ErrProtected
}

// OutOfRangeError reports an index outside the current roster bounds.
// Under normal use it means the caller held a stale index.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("roster: index %d out of range [0,%d)", e.Index, e.Len)
}

// Is matches ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
