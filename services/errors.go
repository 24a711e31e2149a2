package services

import "errors"

// Common errors
var (
	// Malformed requests: a required scoping parameter is missing. These
	// surface before any permission check runs.
	ErrNotespaceRequired = errors.New("notespace parameter is required")
	ErrNoteRequired      = errors.New("note parameter is required")
	ErrInvalidInput      = errors.New("invalid input")

	// Lookup failures, distinct from denial.
	ErrUserNotFound      = errors.New("user not found")
	ErrNotespaceNotFound = errors.New("note space not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrTagNotFound       = errors.New("tag not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteLogNotFound   = errors.New("note log not found")

	// Denial, never conflated with not-found once the target exists.
	ErrForbidden = errors.New("insufficient access rights")

	// Uniqueness conflicts surfaced as validation errors.
	ErrEmailExists  = errors.New("email already registered")
	ErrMemberExists = errors.New("user is already a member of this note space")
	ErrTagExists    = errors.New("tag name already exists in this note space")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
