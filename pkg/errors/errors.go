// Package errors provides structured error handling for shapewrap.
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
	// KindConfig indicates invalid caller or shape configuration.
	KindConfig
	// KindRegistry indicates a malformed shape registry record or file.
	KindRegistry
	// KindParsing indicates a path-data parsing failure.
	KindParsing
	// KindRender indicates a markup or raster rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindRegistry:
		return "registry"
	case KindParsing:
		return "parsing"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ShapeError represents a structured error raised while rendering a shape.
type ShapeError struct {
	// Op is the operation that failed (e.g., "geometry.Compute").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Shape is the shape name, if applicable.
	Shape string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ShapeError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("%s [%s] shape=%s: %v", e.Op, e.Kind, e.Shape, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// ValidationError reports a configuration value rejected before any markup
// is synthesized.
type ValidationError struct {
	// Field names the offending input (e.g., "paneHeight").
	Field string
	// Value is the rejected value.
	Value any
	// Reason describes the violated constraint.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// ParseError represents a failure to parse SVG path data.
type ParseError struct {
	// Input is the path data being parsed.
	Input string
	// Msg describes the problem, including its position in Input.
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid path data %.40q: %s", e.Input, e.Msg)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "shapewrap.RenderAll").
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

// Config wraps a validation failure as a KindConfig ShapeError.
func Config(op, shape string, v *ValidationError) *ShapeError {
	return &ShapeError{Op: op, Kind: KindConfig, Shape: shape, Err: v}
}

// ErrorHandler receives errors reported by shapewrap.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ShapeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
