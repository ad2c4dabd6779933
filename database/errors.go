package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by ID matches no row. Handlers map it
// to HTTP 404.
var ErrNotFound = errors.New("record not found")

// NotFoundError carries the resource name and ID for log context while still
// matching errors.Is(err, ErrNotFound).
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Unwrap lets errors.Is treat every NotFoundError as ErrNotFound
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// notFound normalizes gorm's record-not-found into a NotFoundError, leaving
// other errors untouched.
func notFound(resource, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
