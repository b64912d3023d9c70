package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInput represents invalid caller input
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeAssistant represents LLM/completion-related errors
	ErrorTypeAssistant ErrorType = "assistant"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeTool represents tool routing/execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Input errors

// ErrEmptyMessage is returned when a caller submits an empty message
var ErrEmptyMessage = NewBaseError(ErrorTypeInput, "message is required", nil)

// Assistant errors

// ErrCompletionFailed is returned when the completion request fails
type ErrCompletionFailed struct {
	*BaseError
	Model    string
	Attempts int
}

func NewCompletionFailed(model string, attempts int, err error) *ErrCompletionFailed {
	return &ErrCompletionFailed{
		BaseError: NewBaseError(ErrorTypeAssistant, fmt.Sprintf("completion request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
	}
}

// ErrEmptyCompletion is returned when the model returns no choices
var ErrEmptyCompletion = NewBaseError(ErrorTypeAssistant, "no choices in completion response", nil)

// Graph errors

// ErrGraphConnectionFailed is returned when the Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrPersonNotFound is returned when a named person does not exist
type ErrPersonNotFound struct {
	*BaseError
	Name string
}

func NewPersonNotFound(name string) *ErrPersonNotFound {
	return &ErrPersonNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("person not found: %s", name), nil),
		Name:      name,
	}
}

// ErrInvalidRelationshipType is returned when a relationship type is not an
// identifier-safe token. Relationship types are interpolated into Cypher as
// edge labels, so anything outside the safe charset is rejected outright.
type ErrInvalidRelationshipType struct {
	*BaseError
	RelType string
}

func NewInvalidRelationshipType(relType string) *ErrInvalidRelationshipType {
	return &ErrInvalidRelationshipType{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("invalid relationship type: %q", relType), nil),
		RelType:   relType,
	}
}

// Tool errors

// ErrUnknownTool is returned when a requested tool is not in the catalog
type ErrUnknownTool struct {
	*BaseError
	ToolName string
}

func NewUnknownTool(toolName string) *ErrUnknownTool {
	return &ErrUnknownTool{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("unknown tool: %s", toolName), nil),
		ToolName:  toolName,
	}
}

// Config errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		inner := wrapped.Unwrap()
		if inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}
