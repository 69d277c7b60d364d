// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import "fmt"

// ErrorKind categorizes rewriting pass errors.
type ErrorKind uint8

const (
	// ErrAttributeSlotsExhausted indicates a vertex shader with more
	// attributes than the packing policy has slots for.
	ErrAttributeSlotsExhausted ErrorKind = iota
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrAttributeSlotsExhausted:
		return "AttributeSlotsExhausted"
	default:
		return "Unknown"
	}
}

// Error represents a rewriting pass error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rewrite %s: %s", e.Kind, e.Message)
}

// NewError creates a new rewriting pass error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// IsAttributeSlotsExhausted returns true if the error is
// ErrAttributeSlotsExhausted.
func (e *Error) IsAttributeSlotsExhausted() bool {
	return e.Kind == ErrAttributeSlotsExhausted
}
