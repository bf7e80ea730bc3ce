package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned for every failed login, whether the
	// username is unknown, the password is wrong or the account is disabled
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports invalid input, naming the offending field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialError reports a mutation refused because other records still
// reference the target, e.g. deleting a client that has bookings
type ReferentialError struct {
	Entity  string
	Message string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// PersistenceError wraps an underlying storage failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// wrapPersistence wraps a storage error, keeping nil errors nil
func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
