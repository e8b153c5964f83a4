// Package errors provides a lightweight structured error type (GosettaError)
// for category-based classification in the translation pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gosetta error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content processing errors
	CategoryTemplate    ErrorCategory = "template"
	CategoryCatalog     ErrorCategory = "catalog"
	CategoryTranslation ErrorCategory = "translation"
	CategoryFormat      ErrorCategory = "format"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryWatch      ErrorCategory = "watch"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// GosettaError is a structured error with category, retryability, and context
type GosettaError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for GosettaError
type ContextFields map[string]any

// Error implements the error interface
func (e *GosettaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GosettaError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GosettaError) WithContext(key string, value any) *GosettaError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the error severity
func (e *GosettaError) WithSeverity(severity ErrorSeverity) *GosettaError {
	e.Severity = severity
	return e
}

// New creates a new GosettaError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GosettaError {
	return &GosettaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new GosettaError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GosettaError {
	return &GosettaError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ge, ok := err.(*GosettaError); ok {
		return ge.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a GosettaError
func GetCategory(err error) ErrorCategory {
	if ge, ok := err.(*GosettaError); ok {
		return ge.Category
	}
	return CategoryInternal
}

// WrapError wraps an existing error with a new GosettaError at error severity
func WrapError(err error, category ErrorCategory, message string) *GosettaError {
	return &GosettaError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}
