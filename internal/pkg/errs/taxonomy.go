package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is the sentinel for recoverable input problems.
	// Callers can self-correct using the reported details; no automatic retry.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict is the sentinel for invalid transitions and stale state.
	// Callers must re-fetch current state before retrying.
	ErrStateConflict = errors.New("state conflict")

	// ErrExternalService is the sentinel for collaborator failures
	// (rate lookup, distance lookup, payment capture).
	ErrExternalService = errors.New("external service failed")

	// ErrBlockedAccount is the sentinel for parcels blocked by outstanding
	// storage debt. It is a special case of state conflict that names the remedy.
	ErrBlockedAccount = errors.New("account is blocked")
)

// ValidationError reports one or more input violations for a single operation.
// Details carries every violation, not just the first, so the caller can
// self-correct in one round trip.
type ValidationError struct {
	Operation string
	Details   []string
	Cause     error
}

// NewValidationError creates a ValidationError for the named operation.
func NewValidationError(operation string, details ...string) *ValidationError {
	return &ValidationError{Operation: operation, Details: details}
}

// NewValidationErrorWithCause creates a ValidationError wrapping an aggregated cause.
func NewValidationErrorWithCause(operation string, cause error, details ...string) *ValidationError {
	return &ValidationError{Operation: operation, Details: details, Cause: cause}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s", e.Operation)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Operation, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StateConflictError reports an operation attempted against incompatible state:
// an invalid status transition, a stale selection, or a double-payment attempt.
type StateConflictError struct {
	Operation string
	Current   string
	Reason    string
}

// NewStateConflictError creates a StateConflictError for the named operation.
func NewStateConflictError(operation, current, reason string) *StateConflictError {
	return &StateConflictError{Operation: operation, Current: current, Reason: reason}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict: %s: %s (current state: %s)", e.Operation, e.Reason, e.Current)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// ExternalServiceError reports a collaborator failure. Fallback indicates
// whether the operation degraded to a default value instead of failing.
type ExternalServiceError struct {
	Service  string
	Fallback bool
	Cause    error
}

// NewExternalServiceError creates an ExternalServiceError for the named collaborator.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

// NewExternalServiceErrorWithFallback marks a collaborator failure where the
// caller received a degraded default instead of a hard failure.
func NewExternalServiceErrorWithFallback(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Fallback: true, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external service failed: %s (cause: %s)", e.Service, e.Cause)
	}
	return fmt.Sprintf("external service failed: %s", e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

// BlockedAccountError reports that quoting or payment is blocked by
// outstanding storage debt. DebtAmount is the amount that must be settled.
type BlockedAccountError struct {
	TrackingCode string
	DebtAmount   float64
}

// NewBlockedAccountError creates a BlockedAccountError for the given parcel.
func NewBlockedAccountError(trackingCode string, debtAmount float64) *BlockedAccountError {
	return &BlockedAccountError{TrackingCode: trackingCode, DebtAmount: debtAmount}
}

func (e *BlockedAccountError) Error() string {
	return fmt.Sprintf("account is blocked: parcel %s has %.2f of outstanding storage debt, pay the debt first",
		e.TrackingCode, e.DebtAmount)
}

// Unwrap reports both ErrBlockedAccount and ErrStateConflict so callers can
// treat the block as a state conflict without losing the specific remedy.
func (e *BlockedAccountError) Unwrap() []error {
	return []error{ErrBlockedAccount, ErrStateConflict}
}
