package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrIncompleteProfile = errors.New("profile incomplete")
	ErrUpstream          = errors.New("upstream failure")
	ErrPersistence       = errors.New("persistence failed")

	// Returned by profile repositories when no row exists.
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)
)

// ValidationError is a caller error in the request itself
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports that a referenced resource does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IncompleteProfileError is returned by the completeness gate. Missing lists
// the fields the candidate still has to fill in.
type IncompleteProfileError struct {
	Percentage int
	Missing    CompletionCheck
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile is %d%% complete, at least 50%% is required", e.Percentage)
}

func (e *IncompleteProfileError) Is(target error) bool {
	return target == ErrIncompleteProfile
}

// UpstreamError wraps a failed read from one of the backing stores
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

// PersistenceWarning describes a failed match write. It is logged, never
// returned to callers of the pipeline.
type PersistenceWarning struct {
	Count int
	Err   error
}

func (e *PersistenceWarning) Error() string {
	return fmt.Sprintf("failed to persist %d matches: %v", e.Count, e.Err)
}

func (e *PersistenceWarning) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
