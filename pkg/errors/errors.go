// Package errors provides structured error reporting for the grid panel.
//
// Layout itself never fails: degenerate input resolves to empty results.
// This package carries the conditions that come from collaborators, such as
// a container factory that panics, to a process-wide handler.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindFactory indicates the container factory failed to realize an index.
	KindFactory
	// KindLayout indicates a measure or arrange problem.
	KindLayout
	// KindConfig indicates invalid configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindFactory:
		return "factory"
	case KindLayout:
		return "layout"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ErrNilContainer is reported when a factory returns no container.
var ErrNilContainer = errors.New("factory returned a nil container")

// GridError represents a structured error raised around a panel.
type GridError struct {
	// Op is the operation that failed (e.g., "virtualizing.reconcile").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Index is the item index involved, or -1 when not applicable.
	Index int
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GridError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s [%s] index=%d: %v", e.Op, e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GridError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "virtualizing.createContainer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported around the panel.
type ErrorHandler interface {
	// HandleError is called for every reported error, including recovered
	// panics, which arrive as a GridError wrapping a PanicError.
	HandleError(err *GridError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
