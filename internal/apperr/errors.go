// Package apperr classifies the failures of the hotel workflow so that callers
// can decide how to surface them.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any store write when required input is
// missing or malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StoreWriteError wraps a mutation the store rejected or failed.
type StoreWriteError struct {
	Op  string
	err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.err
}

// NewStoreWriteError wraps err as a failed store mutation. A nil err stays nil.
func NewStoreWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreWriteError{Op: op, err: err}
}

// GatewayDeliveryError represents a push the gateway did not accept. It is
// only ever logged.
type GatewayDeliveryError struct {
	Target string
	err    error
}

func (e *GatewayDeliveryError) Error() string {
	return fmt.Sprintf("push to %s failed: %v", e.Target, e.err)
}

func (e *GatewayDeliveryError) Unwrap() error {
	return e.err
}

// NewGatewayDeliveryError wraps err as a failed push.
func NewGatewayDeliveryError(target string, err error) error {
	return &GatewayDeliveryError{Target: target, err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsStoreWrite reports whether err is a StoreWriteError.
func IsStoreWrite(err error) bool {
	var s *StoreWriteError
	return errors.As(err, &s)
}

// IsGatewayDelivery reports whether err is a GatewayDeliveryError.
func IsGatewayDelivery(err error) bool {
	var g *GatewayDeliveryError
	return errors.As(err, &g)
}
