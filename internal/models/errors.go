package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrForbidden          = errors.New("models: action not allowed for this user")
	ErrInvalidStatus      = errors.New("models: invalid advertisement status")
	ErrCategoryCycle      = errors.New("models: category parent chain would form a cycle")
	ErrReferenced         = errors.New("models: record is still referenced")
	ErrInvalidReference   = errors.New("models: referenced record does not exist")
	ErrIDMismatch         = errors.New("models: ID mismatch")
)

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns nil when no field failed so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "models: validation failed (" + strings.Join(parts, "; ") + ")"
}
