package models

import (
	"fmt"
	"strings"
)

// ValidationKind names the specific invariant a rejected mutation violated.
type ValidationKind string

const (
	ValidationCycle          ValidationKind = "cycle"
	ValidationMissingDep     ValidationKind = "missing_dependency"
	ValidationSelfDep        ValidationKind = "self_dependency"
	ValidationDuplicateID    ValidationKind = "duplicate_id"
	ValidationUrgentConflict ValidationKind = "urgent_conflict"
	ValidationBadField       ValidationKind = "bad_field"
	ValidationBadTransition  ValidationKind = "bad_transition"
)

// ValidationError reports a rejected mutation. It is always raised before
// any persistence occurs. For cycle violations, CyclePath carries the full
// ordered cycle (first id repeated at the end).
type ValidationError struct {
	Kind      ValidationKind
	ItemID    string
	Detail    string
	CyclePath []string
}

func (e *ValidationError) Error() string {
	if e.Kind == ValidationCycle && len(e.CyclePath) > 0 {
		return fmt.Sprintf("validation failed (%s): dependency cycle: %s", e.Kind, strings.Join(e.CyclePath, " -> "))
	}
	if e.ItemID != "" {
		return fmt.Sprintf("validation failed (%s): %s: %s", e.Kind, e.ItemID, e.Detail)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Detail)
}

// NotFoundError reports an operation referencing an unknown id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("work item %s not found", e.ID)
}

// StorageError reports an unreadable or malformed underlying store.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error at %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RenderError reports a failed or unavailable external rendering process.
// It is non-fatal: the renderer degrades to a text fallback instead of
// aborting the command.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
