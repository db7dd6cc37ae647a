// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; the HTTP layer maps them to status codes.
package apperr

import "fmt"

// NotFoundError means a referenced id (or email) does not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError means a unique key is already taken (duplicate email).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError means a required field is missing, blank, or outside
// its closed enumeration.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthenticationError means bad credentials or an invalid/expired token.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

func Authentication(msg string) error {
	return &AuthenticationError{Msg: msg}
}
