package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrDuplicate         = errors.New("duplicate")
	ErrGatewayTransient  = errors.New("certification gateway transient error")
	ErrGatewayPermanent  = errors.New("certification gateway rejected document")
	ErrStorage           = errors.New("storage error")
	ErrAuth              = errors.New("certification gateway authentication failed")
	ErrState             = errors.New("illegal state transition")
	ErrStateConflict     = errors.New("invoice state changed concurrently")
	ErrAttemptsExhausted = errors.New("retry attempts exhausted")
	ErrBatchInput        = errors.New("invalid batch input")
	ErrUnauthenticated   = errors.New("unauthenticated")
)

// Error codes returned to callers inside structured results.
const (
	ErrorCodeValidation       = "VALIDATION"
	ErrorCodeDuplicate        = "DUPLICATE"
	ErrorCodeGatewayTransient = "GATEWAY_TRANSIENT"
	ErrorCodeGatewayPermanent = "GATEWAY_PERMANENT"
	ErrorCodeStorage          = "STORAGE"
	ErrorCodeAuth             = "AUTH"
	ErrorCodeState            = "STATE"
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeSkipped          = "SKIPPED"
	ErrorCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrorCodeInternal         = "INTERNAL"
)

// Classify maps an error to a stable error code.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBatchInput):
		return ErrorCodeValidation
	case errors.Is(err, ErrDuplicate):
		return ErrorCodeDuplicate
	case errors.Is(err, ErrGatewayTransient):
		return ErrorCodeGatewayTransient
	case errors.Is(err, ErrGatewayPermanent):
		return ErrorCodeGatewayPermanent
	case errors.Is(err, ErrStorage):
		return ErrorCodeStorage
	case errors.Is(err, ErrAuth):
		return ErrorCodeAuth
	case errors.Is(err, ErrState), errors.Is(err, ErrStateConflict), errors.Is(err, ErrAttemptsExhausted):
		return ErrorCodeState
	case errors.Is(err, ErrNotFound):
		return ErrorCodeNotFound
	case errors.Is(err, ErrUnauthenticated):
		return ErrorCodeUnauthenticated
	default:
		return ErrorCodeInternal
	}
}

// Retryable reports whether the orchestrator may drive the operation again.
func Retryable(err error) bool {
	return errors.Is(err, ErrGatewayTransient) || errors.Is(err, ErrStorage)
}

// GatewayError describes a failed call to the certification provider.
type GatewayError struct {
	Kind       error // one of ErrGatewayTransient, ErrGatewayPermanent, ErrAuth
	StatusCode int
	Code       string
	Field      string
	Message    string
	Raw        []byte
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}

	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, msg)
	}

	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *GatewayError) Unwrap() error {
	return e.Kind
}

// StateError is returned for a transition outside the lifecycle table.
type StateError struct {
	Op   string
	From InvoiceStatus
	To   InvoiceStatus
}

func (e *StateError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s -> %s", ErrState, e.From, e.To)
	}

	return fmt.Sprintf("%s: %s %s -> %s", ErrState, e.Op, e.From, e.To)
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// ErrorMessage returns a message suitable for a caller facing result.
func ErrorMessage(err error) string {
	var ge *GatewayError
	if errors.As(err, &ge) {
		if ge.Field != "" {
			return fmt.Sprintf("%s: %s", ge.Field, ge.Message)
		}

		return ge.Message
	}

	return err.Error()
}
