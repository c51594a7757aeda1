package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Error types for consistent error handling across the BFF.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a malformed request (unknown field, overlay,
// intent, or a value of the wrong type).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrFieldValidation carries the per-field messages of a form that
// failed its rules. It is recoverable: the user edits and retries.
type ErrFieldValidation struct {
	Form    string
	Message string // optional summary shown as a toast
	Errors  FieldErrors
}

func (e *ErrFieldValidation) Error() string {
	if len(e.Errors) == 0 && e.Message != "" {
		return fmt.Sprintf("%s form invalid: %s", e.Form, e.Message)
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s form invalid: %s", e.Form, strings.Join(fields, ", "))
}

// ErrUnauthorized indicates a missing or invalid session token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrOverlayInactive indicates a form intent arrived while its overlay
// is not the visible one.
type ErrOverlayInactive struct {
	Required Overlay
	Active   Overlay
}

func (e *ErrOverlayInactive) Error() string {
	return fmt.Sprintf("overlay %s is not active (active: %s)", e.Required, e.Active)
}
