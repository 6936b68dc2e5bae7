// Package errors provides structured error handling for vlist.
//
// Errors returned by the virtualizer and its collaborators are *Error values
// carrying the failing operation and a Kind. Sentinel errors identify the
// specific condition and can be matched with Is:
//
//	if _, err := virtual.NewFixedLayout(0); errors.Is(err, errors.ErrInvalidItemSize) {
//	    ...
//	}
//
// Panics recovered from plugins or host code are reported to a process-wide
// ErrorHandler, which logs to stderr by default.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindDestroyed indicates an operation on a destroyed virtualizer.
	KindDestroyed
	// KindPlugin indicates a failure inside a plugin hook.
	KindPlugin
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindParsing indicates a configuration or snapshot decoding failure.
	KindParsing
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDestroyed:
		return "destroyed"
	case KindPlugin:
		return "plugin"
	case KindPanic:
		return "panic"
	case KindParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidItemSize is returned when a layout is configured with a
	// non-positive or non-finite item size.
	ErrInvalidItemSize = stderrors.New("item size must be a positive finite number")
	// ErrNegativeCount is returned when an item count is below zero.
	ErrNegativeCount = stderrors.New("count must not be negative")
	// ErrNegativeOverscan is returned when an overscan is below zero.
	ErrNegativeOverscan = stderrors.New("overscan must not be negative")
	// ErrDestroyed is returned by mutators called after Destroy.
	ErrDestroyed = stderrors.New("virtualizer already destroyed")
	// ErrRangeOutOfBounds is reported when a plugin returns a render range
	// outside [0, count-1].
	ErrRangeOutOfBounds = stderrors.New("render range outside the item bounds")
)

// Error represents a structured vlist error.
type Error struct {
	// Op is the operation that failed (e.g., "virtual.SetCount").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error, if captured.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config returns a KindConfig error for op.
func Config(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: err}
}

// Destroyed returns a KindDestroyed error for op wrapping ErrDestroyed.
func Destroyed(op string) *Error {
	return &Error{Op: op, Kind: KindDestroyed, Err: ErrDestroyed}
}

// Plugin returns a KindPlugin error for op.
func Plugin(op string, err error) *Error {
	return &Error{Op: op, Kind: KindPlugin, Err: err}
}

// Parsing returns a KindParsing error for op.
func Parsing(op string, err error) *Error {
	return &Error{Op: op, Kind: KindParsing, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "plugin.OnRangeCalculated").
	Op string
	// Plugin is the name of the plugin whose hook panicked, if any.
	Plugin string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	switch {
	case e.Plugin != "" && e.Op != "":
		return fmt.Sprintf("panic in %s (plugin %s): %v", e.Op, e.Plugin, e.Value)
	case e.Op != "":
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	default:
		return fmt.Sprintf("panic: %v", e.Value)
	}
}

// ErrorHandler receives errors reported by vlist.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}
