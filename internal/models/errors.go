package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the failure modes the HTTP layer translates to
// status codes. ErrInvalidCredentials carries the exact message shown to
// the user on a failed login; unknown username and wrong password produce
// the identical error so usernames cannot be enumerated.
var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrTokenInvalid       = errors.New("token missing or invalid")
	ErrForbidden          = errors.New("only the creator can delete a blog")
	ErrNotFound           = errors.New("resource not found")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ValidationError reports missing or malformed input with field-level detail
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem for a field and returns the error for chaining
func (e *ValidationError) Add(field, problem string) *ValidationError {
	e.Fields[field] = problem
	return e
}

// Empty reports whether any field problems were recorded
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
