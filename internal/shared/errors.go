package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials indicates login failure. Deliberately covers
	// unknown email, wrong password and inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates no principal could be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrPermissionDenied indicates the principal lacks a required permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAccountLocked indicates too many failed login attempts.
	ErrAccountLocked = errors.New("account locked")
	// ErrValidation indicates a malformed request payload.
	ErrValidation = errors.New("validation failed")
)
