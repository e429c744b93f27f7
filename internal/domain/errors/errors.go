package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to transport status codes; concrete errors below wrap exactly one kind.
var (
	ErrValidation      = errors.New("validation failed")
	ErrBusinessRule    = errors.New("business rule violated")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrInfrastructure  = errors.New("infrastructure failure")
)

// Sentinel errors for use cases. errors.Is matches both the sentinel and its kind.
var (
	ErrUsernameAlreadyExists = newKind(ErrBusinessRule, "username already exists")
	ErrEmailAlreadyExists    = newKind(ErrBusinessRule, "email already exists")
	ErrUserNotActive         = newKind(ErrBusinessRule, "user is not active")
	ErrInvalidTransition     = newKind(ErrBusinessRule, "transition not allowed")
	ErrInvalidCredentials    = newKind(ErrUnauthenticated, "invalid username or password")
	ErrAccountLocked         = newKind(ErrUnauthenticated, "account temporarily locked")
	ErrUserNotFound          = newKind(ErrNotFound, "user not found")
	ErrProjectNotFound       = newKind(ErrNotFound, "project not found")
	ErrTaskNotFound          = newKind(ErrNotFound, "task not found")
)

type kindError struct {
	kind error
	msg  string
}

func newKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError reports a value object or input rule that was violated at construction.
type ValidationError struct {
	Field string
	Rule  string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InfrastructureError is an opaque persistence or transport failure. The core never inspects Err.
type InfrastructureError struct {
	Op  string
	Err error
}

// Infrastructure wraps err as an InfrastructureError unless it is nil or already one.
func Infrastructure(op string, err error) error {
	if err == nil {
		return nil
	}
	var infra *InfrastructureError
	if errors.As(err, &infra) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

func (e *InfrastructureError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInfrastructure) match without exposing the cause.
func (e *InfrastructureError) Is(target error) bool { return target == ErrInfrastructure }
