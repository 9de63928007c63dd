// Package payment provides the HTTP client for the payment provider.
// Charges are idempotent on the provider side via the caller-supplied
// idempotency key; ambiguous outcomes are surfaced as reconciliation
// errors and never retried here.
package payment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"

	"github.com/goccy/go-json"
)

const requestTimeout = 30 * time.Second

// Gateway implements ports.PaymentGateway against the payment provider API.
type Gateway struct {
	session *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewGateway creates a payment provider client.
func NewGateway(baseURL, apiKey string, logger *slog.Logger) (*Gateway, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("payment gateway base url")
	}

	return &Gateway{
		session: &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}, nil
}

type chargeRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CustomerRef string  `json:"customer_ref"`
	Description string  `json:"description"`
}

type chargeResponse struct {
	PaymentID  string  `json:"payment_id"`
	Amount     float64 `json:"amount"`
	CapturedAt int64   `json:"captured_at"`
}

// Charge captures a payment. A clean provider rejection (4xx) is reported
// as an ExternalServiceError and is safe to retry with corrected input.
// Transport failures and 5xx responses are ambiguous: the provider may have
// captured the funds, so the error demands manual reconciliation keyed by
// the idempotency key.
func (g *Gateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.ChargeReceipt, error) {
	logger := g.logger.With(
		slog.String("adapter", "payment"),
		slog.String("idempotency_key", req.IdempotencyKey),
	)

	if req.IdempotencyKey == "" {
		return ports.ChargeReceipt{}, errs.NewValueIsRequiredError("idempotency key")
	}
	if req.Amount <= 0 {
		return ports.ChargeReceipt{}, errs.NewValueIsInvalidError("charge amount")
	}

	body, err := json.Marshal(chargeRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		CustomerRef: req.CustomerRef,
		Description: req.Description,
	})
	if err != nil {
		return ports.ChargeReceipt{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return ports.ChargeReceipt{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", g.apiKey)
	}

	resp, err := g.session.Do(httpReq)
	if err != nil {
		// The request may have reached the provider; the idempotency key
		// is the only handle reconciliation has.
		logger.Error("charge outcome unknown", slog.Any("error", err))
		return ports.ChargeReceipt{}, &ports.PaymentPendingReconciliationError{
			PaymentID: req.IdempotencyKey,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var decoded chargeResponse
		if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			logger.Error("charge confirmation unreadable", slog.Any("error", err))
			return ports.ChargeReceipt{}, &ports.PaymentPendingReconciliationError{
				PaymentID: req.IdempotencyKey,
				Cause:     err,
			}
		}

		logger.Info("charge captured", slog.String("payment_id", decoded.PaymentID))
		return ports.ChargeReceipt{
			PaymentID:  decoded.PaymentID,
			Amount:     decoded.Amount,
			CapturedAt: decoded.CapturedAt,
		}, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		raw, _ := io.ReadAll(resp.Body)
		rejection := fmt.Errorf("payment provider rejected charge (%d): %s", resp.StatusCode, raw)
		logger.Warn("charge rejected", slog.Int("status_code", resp.StatusCode))
		return ports.ChargeReceipt{}, errs.NewExternalServiceError("payment gateway", rejection)

	default:
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("charge outcome unknown", slog.Int("status_code", resp.StatusCode))
		return ports.ChargeReceipt{}, &ports.PaymentPendingReconciliationError{
			PaymentID: req.IdempotencyKey,
			Cause:     fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, raw),
		}
	}
}
