package entity

import (
	"errors"
	"fmt"
	"strings"
)

// AuthErrorKind categorizes identity store failures.
type AuthErrorKind string

const (
	AuthInvalidCredentials AuthErrorKind = "invalid-credentials"
	AuthNetwork            AuthErrorKind = "network"
	AuthUnknown            AuthErrorKind = "unknown"
)

type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth error (%s)", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

// PermissionError means the acting role lacks the capability for the
// requested action.
type PermissionError struct {
	Role   Role
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %q is not permitted to %s", e.Role, e.Action)
}

// ValidationError carries the list of missing or invalid fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// InvalidTransitionError means a status update targeted something other than
// the two legal terminal states.
type InvalidTransitionError struct {
	Target PostStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition target %q", e.Target)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

var ErrEmailTaken = errors.New("email already registered")
