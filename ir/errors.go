package ir

import "fmt"

// ErrorKind categorizes tree rewriting errors.
type ErrorKind uint8

const (
	// ErrUnsupportedReplacementTarget indicates a parent node whose kind
	// cannot host a child replacement, or a parent that does not reference
	// the child being replaced.
	ErrUnsupportedReplacementTarget ErrorKind = iota

	// ErrMalformedLinkerSection indicates a tree whose root does not end
	// with a linker-objects aggregate.
	ErrMalformedLinkerSection

	// ErrInvalidHandle indicates a handle outside the arena or referring
	// to a released node.
	ErrInvalidHandle

	// ErrUnknownSymbol indicates a recorded use of a symbol that has no
	// registered replacement.
	ErrUnknownSymbol

	// ErrInvalidConversion indicates a shape conversion with no matching
	// constructor.
	ErrInvalidConversion
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedReplacementTarget:
		return "UnsupportedReplacementTarget"
	case ErrMalformedLinkerSection:
		return "MalformedLinkerSection"
	case ErrInvalidHandle:
		return "InvalidHandle"
	case ErrUnknownSymbol:
		return "UnknownSymbol"
	case ErrInvalidConversion:
		return "InvalidConversion"
	default:
		return "Unknown"
	}
}

// Error represents a tree rewriting error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Handle optionally identifies the node involved. InvalidHandle means
	// no node is associated.
	Handle NodeHandle
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Handle != InvalidHandle {
		return fmt.Sprintf("ir %s at node %d: %s", e.Kind, e.Handle, e.Message)
	}
	return fmt.Sprintf("ir %s: %s", e.Kind, e.Message)
}

// NewError creates a new tree error with no associated node.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Handle:  InvalidHandle,
	}
}

// NewErrorAt creates a new tree error associated with a node.
func NewErrorAt(kind ErrorKind, h NodeHandle, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Handle:  h,
	}
}

// IsUnsupportedReplacementTarget returns true if the error is
// ErrUnsupportedReplacementTarget.
func (e *Error) IsUnsupportedReplacementTarget() bool {
	return e.Kind == ErrUnsupportedReplacementTarget
}

// IsMalformedLinkerSection returns true if the error is
// ErrMalformedLinkerSection.
func (e *Error) IsMalformedLinkerSection() bool {
	return e.Kind == ErrMalformedLinkerSection
}
