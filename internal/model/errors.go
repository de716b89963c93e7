package model

import "fmt"

// ValidationError represents malformed or missing caller input, detected
// before any network call.
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

// NotFoundError represents an operation referencing a resource id unknown
// to the provider.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ProviderError represents a transport failure, authentication failure, or
// any provider-reported rejection.
type ProviderError struct {
	Op      string
	Code    string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error [%s] %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error [%s]: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(op, code, message string, cause error) *ProviderError {
	return &ProviderError{
		Op:      op,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
