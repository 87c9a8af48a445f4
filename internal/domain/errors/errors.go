package errors

import (
	"fmt"
)

// AnnotationMissingError is raised when a DSL symbol is loaded without
// full type annotations. Symbol loading aborts on the first occurrence.
type AnnotationMissingError struct {
	// Symbol is the name of the offending symbol
	Symbol string
	// Detail describes the missing annotation
	Detail string
}

// Error implements the error interface.
func (e *AnnotationMissingError) Error() string {
	return fmt.Sprintf("annotation missing for symbol %q: %s", e.Symbol, e.Detail)
}

// NewAnnotationMissingError creates a new AnnotationMissingError.
func NewAnnotationMissingError(symbol, detail string) *AnnotationMissingError {
	return &AnnotationMissingError{Symbol: symbol, Detail: detail}
}

// SynthesisError is raised when enumeration cannot start because no
// available content can produce the expected output type.
type SynthesisError struct {
	// OutputType is the expected output type that nothing can produce
	OutputType string
	// Message is the error message
	Message string
}

// Error implements the error interface.
func (e *SynthesisError) Error() string {
	if e.OutputType != "" {
		return fmt.Sprintf("synthesis error: %s (output type %s)", e.Message, e.OutputType)
	}
	return fmt.Sprintf("synthesis error: %s", e.Message)
}

// NewSynthesisError creates a new SynthesisError.
func NewSynthesisError(outputType, message string) *SynthesisError {
	return &SynthesisError{OutputType: outputType, Message: message}
}

// StateError is raised on an illegal program graph mutation, such as
// filling an already filled blank. It indicates a programmer bug.
type StateError struct {
	// BlankID is the id of the blank involved in the illegal mutation
	BlankID string
	// Message is the error message
	Message string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	if e.BlankID != "" {
		return fmt.Sprintf("state error on blank %q: %s", e.BlankID, e.Message)
	}
	return fmt.Sprintf("state error: %s", e.Message)
}

// NewStateError creates a new StateError.
func NewStateError(blankID, message string) *StateError {
	return &StateError{BlankID: blankID, Message: message}
}

// RenderError is raised when rendering a program graph that still has
// empty blanks. It indicates a programmer bug.
type RenderError struct {
	// BlankID is the id of the empty blank that broke rendering
	BlankID string
	// Message is the error message
	Message string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.BlankID != "" {
		return fmt.Sprintf("render error on blank %q: %s", e.BlankID, e.Message)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

// NewRenderError creates a new RenderError.
func NewRenderError(blankID, message string) *RenderError {
	return &RenderError{BlankID: blankID, Message: message}
}

// EvalError wraps a failure raised by a user operation while evaluating
// a candidate program on one example. The evaluator records the example
// as failed and continues; it never aborts the enumeration.
type EvalError struct {
	// Program is the name of the candidate program being evaluated
	Program string
	// Cause is the underlying failure
	Cause error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation of %q failed: %v", e.Program, e.Cause)
}

// Unwrap returns the underlying cause of the error.
func (e *EvalError) Unwrap() error {
	return e.Cause
}

// NewEvalError creates a new EvalError.
func NewEvalError(program string, cause error) *EvalError {
	return &EvalError{Program: program, Cause: cause}
}
