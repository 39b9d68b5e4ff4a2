package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common engine errors.
var (
	// ErrNotFound is returned when a required entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSessionClosed is returned when closing an already-closed session.
	ErrSessionClosed = errors.New("session already closed")

	// ErrNotImplemented is returned by stubbed operations such as remote sync.
	ErrNotImplemented = errors.New("not implemented")
)

// ValidationError carries field-level validation messages for a record
// or snapshot that failed validation.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// FormatError indicates an import document that could not be parsed at all.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid snapshot format: %s", e.Reason)
}

// DecryptionError indicates an obfuscated payload that did not decode
// with the given passphrase.
type DecryptionError struct {
	Reason string
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("deobfuscation failed: %s", e.Reason)
}
