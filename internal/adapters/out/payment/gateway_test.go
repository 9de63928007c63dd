package payment_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cargolink/internal/adapters/out/payment"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChargeRequest() ports.ChargeRequest {
	return ports.ChargeRequest{
		IdempotencyKey: "shipment-42",
		Amount:         135,
		Currency:       "USD",
		CustomerRef:    "cust_9",
		Description:    "consolidated shipment CS-TEST01",
	}
}

func TestGateway_Charge(t *testing.T) {
	t.Run("captures and returns the receipt", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/charges", r.URL.Path)
			assert.Equal(t, "shipment-42", r.Header.Get("Idempotency-Key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"payment_id":"pay_456","amount":135,"captured_at":1735689600}`))
		}))
		defer server.Close()

		gateway, err := payment.NewGateway(server.URL, "key", slog.Default())
		require.NoError(t, err)

		receipt, err := gateway.Charge(context.Background(), testChargeRequest())

		require.NoError(t, err)
		assert.Equal(t, "pay_456", receipt.PaymentID)
		assert.InDelta(t, 135.0, receipt.Amount, 0.001)
		assert.Equal(t, int64(1735689600), receipt.CapturedAt)
	})

	t.Run("provider rejection is a clean failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":"card_declined"}`))
		}))
		defer server.Close()

		gateway, err := payment.NewGateway(server.URL, "key", slog.Default())
		require.NoError(t, err)

		_, err = gateway.Charge(context.Background(), testChargeRequest())

		require.ErrorIs(t, err, errs.ErrExternalService)
		var pendingErr *ports.PaymentPendingReconciliationError
		assert.NotErrorAs(t, err, &pendingErr)
	})

	t.Run("transport failure demands reconciliation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		gateway, err := payment.NewGateway(server.URL, "key", slog.Default())
		require.NoError(t, err)

		_, err = gateway.Charge(context.Background(), testChargeRequest())

		var pendingErr *ports.PaymentPendingReconciliationError
		require.ErrorAs(t, err, &pendingErr)
		assert.Equal(t, "shipment-42", pendingErr.PaymentID)
	})

	t.Run("provider 5xx demands reconciliation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		gateway, err := payment.NewGateway(server.URL, "key", slog.Default())
		require.NoError(t, err)

		_, err = gateway.Charge(context.Background(), testChargeRequest())

		var pendingErr *ports.PaymentPendingReconciliationError
		require.ErrorAs(t, err, &pendingErr)
		assert.Equal(t, "shipment-42", pendingErr.PaymentID)
	})

	t.Run("rejects zero amounts locally", func(t *testing.T) {
		gateway, err := payment.NewGateway("http://payments", "key", slog.Default())
		require.NoError(t, err)

		req := testChargeRequest()
		req.Amount = 0

		_, err = gateway.Charge(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
