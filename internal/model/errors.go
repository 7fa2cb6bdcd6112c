package model

import "fmt"

// Error codes for document parsing
const (
	ErrCodeNoContent = "NO_CONTENT"
	ErrCodeMalformed = "MALFORMED"
)

// Reasons refining a NO_CONTENT error
const (
	ReasonEmpty    = "EMPTY"
	ReasonNoMarkup = "NO_MARKUP"
)

// ParseError represents a document that could not be turned into a tree
type ParseError struct {
	Code string
	// Reason refines Code, e.g. whether a NO_CONTENT input was blank or only lacked markup
	Reason  string
	Kind    DocumentKind
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Kind != "" && e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Code, e.Kind, e.Message, e.Cause)
	}
	if e.Kind != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Kind, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(code string, kind DocumentKind, message string, cause error) *ParseError {
	return &ParseError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// ErrNoContent returns error when the input holds no markup at all
func ErrNoContent(reason, message string) *ParseError {
	err := NewParseError(ErrCodeNoContent, "", message, nil)
	err.Reason = reason
	return err
}

// ErrEmpty returns error when the input is blank
func ErrEmpty() *ParseError {
	return ErrNoContent(ReasonEmpty, "document is empty")
}

// ErrNoMarkup returns error when the input holds text but no markup
func ErrNoMarkup() *ParseError {
	return ErrNoContent(ReasonNoMarkup, "no XML content found")
}

// ErrMalformed returns error when the markup is structurally invalid
func ErrMalformed(cause error) *ParseError {
	return NewParseError(ErrCodeMalformed, "", "invalid XML", cause)
}

// WithKind returns a copy of the error tagged with the document kind it was parsed as
func (e *ParseError) WithKind(kind DocumentKind) *ParseError {
	cp := *e
	cp.Kind = kind
	return &cp
}

// ValidationError represents configuration values that fail a rule
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
