// Package errors provides structured error handling for motion.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid animation or preset configuration.
	KindConfig
	// KindParsing indicates a malformed configuration value.
	KindParsing
	// KindSchedule indicates a tick scheduler or event loop failure.
	KindSchedule
	// KindIO indicates a file, terminal or audio device failure.
	KindIO
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindSchedule:
		return "schedule"
	case KindIO:
		return "io"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// MotionError represents a structured error in motion.
type MotionError struct {
	// Op is the operation that failed (e.g., "animation.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Preset is the animation preset name, if applicable.
	Preset string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MotionError) Error() string {
	if e.Preset != "" {
		return fmt.Sprintf("%s [%s] preset=%s: %v", e.Op, e.Kind, e.Preset, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MotionError) Unwrap() error {
	return e.Err
}

// New returns a MotionError for op wrapping err.
func New(op string, kind ErrorKind, err error) *MotionError {
	return &MotionError{Op: op, Kind: kind, Err: err}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "loop.dispatch").
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

// ParseError represents a configuration value that could not be parsed.
type ParseError struct {
	// Field is the configuration field (e.g., "curve").
	Field string
	// Value is the raw text that was rejected.
	Value string
	// Reason explains the rejection.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ErrorHandler receives errors reported by motion.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *MotionError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
