package ports

import (
	"context"
	"fmt"
)

// ChargeRequest describes a single payment capture attempt.
type ChargeRequest struct {
	// IdempotencyKey dedupes retries of the same business payment on the
	// gateway side. Callers derive it from the shipment identifier.
	IdempotencyKey string
	Amount         float64
	Currency       string
	CustomerRef    string
	Description    string
}

// ChargeReceipt is the gateway's confirmation of a captured payment.
type ChargeReceipt struct {
	PaymentID  string
	Amount     float64
	CapturedAt int64
}

// PaymentPendingReconciliationError signals that the gateway may have
// captured funds but the confirmation was lost. The charge must not be
// retried automatically; the payment id is kept for manual reconciliation.
type PaymentPendingReconciliationError struct {
	PaymentID string
	Cause     error
}

func (e *PaymentPendingReconciliationError) Error() string {
	return fmt.Sprintf("payment %s requires manual reconciliation: %v", e.PaymentID, e.Cause)
}

func (e *PaymentPendingReconciliationError) Unwrap() error { return e.Cause }

// PaymentGateway captures payments with an external provider.
//
// Charge is not idempotent from the caller's perspective: an ambiguous
// outcome is reported as PaymentPendingReconciliationError and must never
// be retried blindly.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeReceipt, error)
}
