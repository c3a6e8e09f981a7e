package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError is a recoverable user-input error. The message is safe to
// show inline and no store mutation happens once one is raised.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidation builds a ValidationError for a single form field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StoreError wraps a failure reported by one of the external stores
// (Postgres roster, Firebase account records). The operation is abandoned,
// never retried automatically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStore wraps err as a StoreError for operation op.
func NewStore(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ConfigError means required configuration or account metadata is missing
// (e.g. an account without trial_end). It is fatal to the current screen:
// the caller must force a sign-out-and-retry instead of degrading silently.
type ConfigError struct {
	Missing string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("config: missing %s: %s", e.Missing, e.Message)
	}
	return fmt.Sprintf("config: missing %s", e.Missing)
}

// GatewayError means an outbound notification or checkout call failed.
// Surfaced to the user, not retried, and never blocks the triggering action.
type GatewayError struct {
	Gateway string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Gateway, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NewGateway wraps err as a GatewayError for the named gateway.
func NewGateway(gateway string, err error) *GatewayError {
	return &GatewayError{Gateway: gateway, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
