// Package errors provides centralized error definitions and error handling
// utilities for the taskmill engine. It defines the error taxonomy shared
// by the store, graph, workflow, and advisor packages, plus constructors
// and classification helpers.
//
// # Error Types
//
//   - NotFoundError: a referenced task or subtask id does not exist
//   - DuplicateError: an edge or id that already exists was added again
//   - CycleError: a dependency insertion would close a cycle
//   - ConflictError: a deletion is blocked by existing dependents
//   - ValidationError: malformed input (bad status, self-dependency, ...)
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewNotFoundError("task", "7")
//	err := errors.NewCycleError([]string{"1", "3", "1"})
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrCycle) { ... }
//
//	var nf *errors.NotFoundError
//	if errors.As(err, &nf) { ... }
//
// Every error in the taxonomy is independently retryable by the caller
// after correcting the input: no operation that returns one leaves any
// partial effect in the store.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience. This allows
// callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the engine's error taxonomy. Semantic error types
// unwrap to these, so callers can classify with errors.Is without
// depending on the concrete types.
var (
	// ErrNotFound indicates a referenced task or subtask does not exist.
	ErrNotFound = New("not found")

	// ErrDuplicate indicates an id or dependency edge already exists.
	ErrDuplicate = New("already exists")

	// ErrCycle indicates a dependency edge would close a cycle.
	ErrCycle = New("dependency cycle")

	// ErrConflict indicates a deletion is blocked by dependents.
	ErrConflict = New("blocked by dependents")

	// ErrValidation indicates malformed input or state.
	ErrValidation = New("validation failed")
)

// NotFoundError reports a task or subtask reference that does not exist
// in the store.
type NotFoundError struct {
	// Kind names what was looked up: "task", "subtask", "dependency".
	Kind string
	// Ref is the display form of the missing reference, e.g. "3.2".
	Ref string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind, ref string) *NotFoundError {
	return &NotFoundError{Kind: kind, Ref: ref}
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Ref)
}

// Unwrap returns the sentinel this error classifies under.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// DuplicateError reports an attempt to add an edge or id that already
// exists.
type DuplicateError struct {
	Kind string
	Ref  string
}

// NewDuplicateError creates a new DuplicateError.
func NewDuplicateError(kind, ref string) *DuplicateError {
	return &DuplicateError{Kind: kind, Ref: ref}
}

// Error returns the formatted error message.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Kind, e.Ref)
}

// Unwrap returns the sentinel this error classifies under.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// CycleError reports a dependency insertion that would close a cycle.
// The insertion is rejected and the graph left unchanged; Path holds
// the display-form references along the cycle that the edge would have
// completed, ending at the node it started from.
type CycleError struct {
	Path []string
}

// NewCycleError creates a new CycleError from the refs along the cycle.
func NewCycleError(path []string) *CycleError {
	return &CycleError{Path: path}
}

// Error returns the formatted error message.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "dependency cycle detected"
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Unwrap returns the sentinel this error classifies under.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// ConflictError reports a deletion blocked by tasks that still depend
// on the target. Retry with the cascade flag to prune the references.
type ConflictError struct {
	// Ref is the deletion target.
	Ref string
	// Dependents lists the refs whose dependency lists contain Ref.
	Dependents []string
}

// NewConflictError creates a new ConflictError.
func NewConflictError(ref string, dependents []string) *ConflictError {
	return &ConflictError{Ref: ref, Dependents: dependents}
}

// Error returns the formatted error message.
func (e *ConflictError) Error() string {
	if len(e.Dependents) == 0 {
		return fmt.Sprintf("cannot remove %s: blocked by dependents", e.Ref)
	}
	return fmt.Sprintf("cannot remove %s: depended on by %s", e.Ref, strings.Join(e.Dependents, ", "))
}

// Unwrap returns the sentinel this error classifies under.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ValidationError reports malformed input: an empty status label, a
// self-dependency, an unknown priority, and so on.
type ValidationError struct {
	// Field names the offending field when known.
	Field   string
	Message string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// WithField attaches the offending field name.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// Unwrap returns the sentinel this error classifies under.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsUserCorrectable reports whether the error is one a caller can fix
// by adjusting the request and retrying. All taxonomy errors qualify;
// I/O and encoding failures do not.
func IsUserCorrectable(err error) bool {
	return Is(err, ErrNotFound) ||
		Is(err, ErrDuplicate) ||
		Is(err, ErrCycle) ||
		Is(err, ErrConflict) ||
		Is(err, ErrValidation)
}
