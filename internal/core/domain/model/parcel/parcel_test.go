package parcel_test

import (
	"testing"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = parcel.StoragePolicy{FreeDays: 30, DailyRate: 1.0}

func newWarehouseParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "1Z999AA10123456784", 250)
	require.NoError(t, err)
	require.NoError(t, p.Receive(time.Now(), "photos/intake.jpg"))
	require.NoError(t, p.RecordMeasurement(12.5, parcel.Dimensions{LengthIn: 10, WidthIn: 8, HeightIn: 6}))
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("creates_pre_alerted_parcel_with_tracking_code", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "1Z999", 100)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.PreAlerted, p.Status())
		assert.NotEmpty(t, p.TrackingCode())
		assert.Equal(t, "1Z999", p.CarrierTrackingCode())
	})

	t.Run("rejects_invalid_ids", func(t *testing.T) {
		var zero kernel.UUID
		_, err := parcel.NewParcel(zero, kernel.NewUUID(), "", 0)
		require.Error(t, err)
	})

	t.Run("rejects_negative_declared_value", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", -5)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p parcel.Parcel
		assert.Equal(t, parcel.ErrParcelIsNotConstructed, p.Validate())
	})
}

func TestParcel_IntakeFlow(t *testing.T) {
	t.Run("receive_then_measure", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", 100)
		require.NoError(t, err)

		require.NoError(t, p.Receive(time.Now(), "photos/intake.jpg"))
		assert.Equal(t, parcel.Receiving, p.Status())
		require.NotNil(t, p.ReceivedAt())

		require.NoError(t, p.RecordMeasurement(12.5, parcel.Dimensions{LengthIn: 10, WidthIn: 8, HeightIn: 6}))
		assert.Equal(t, parcel.InWarehouse, p.Status())
		assert.InDelta(t, 12.5, p.WeightLb(), 0.001)
	})

	t.Run("measurement_rejects_non_positive_weight", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", 100)
		require.NoError(t, err)
		require.NoError(t, p.Receive(time.Now(), ""))

		err = p.RecordMeasurement(0, parcel.Dimensions{LengthIn: 1, WidthIn: 1, HeightIn: 1})

		require.Error(t, err)
		assert.Equal(t, parcel.Receiving, p.Status(), "failed measurement must not mutate state")
	})

	t.Run("measurement_before_receive_is_a_state_conflict", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", 100)
		require.NoError(t, err)

		err = p.RecordMeasurement(5, parcel.Dimensions{LengthIn: 1, WidthIn: 1, HeightIn: 1})

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestParcel_DeclaredValueGate(t *testing.T) {
	t.Run("customer_may_restate_until_verified", func(t *testing.T) {
		p := newWarehouseParcel(t)

		require.NoError(t, p.UpdateDeclaredValue(300))
		require.NoError(t, p.VerifyDeclaredValue())

		err := p.UpdateDeclaredValue(1)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.InDelta(t, 300, p.DeclaredValue(), 0.001)
	})

	t.Run("verification_is_one_way", func(t *testing.T) {
		p := newWarehouseParcel(t)

		require.NoError(t, p.VerifyDeclaredValue())
		err := p.VerifyDeclaredValue()

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestParcel_StorageDebt(t *testing.T) {
	received := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	newReceived := func(t *testing.T) *parcel.Parcel {
		t.Helper()
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", 100)
		require.NoError(t, err)
		require.NoError(t, p.Receive(received, ""))
		return p
	}

	t.Run("zero_within_free_window", func(t *testing.T) {
		p := newReceived(t)

		debt := p.StorageDebt(received.AddDate(0, 0, 29), testPolicy)

		assert.Zero(t, debt)
	})

	t.Run("accrues_per_whole_day_past_the_window", func(t *testing.T) {
		p := newReceived(t)

		debt := p.StorageDebt(received.AddDate(0, 0, 35), testPolicy)

		assert.InDelta(t, 5.0, debt, 0.001)
	})

	t.Run("settlement_resets_accrual", func(t *testing.T) {
		p := newReceived(t)
		p.SettleStorageDebt(received.AddDate(0, 0, 35))

		debt := p.StorageDebt(received.AddDate(0, 0, 37), testPolicy)

		assert.InDelta(t, 2.0, debt, 0.001)
	})

	t.Run("zero_before_arrival", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(), "", 100)
		require.NoError(t, err)

		assert.Zero(t, p.StorageDebt(time.Now(), testPolicy))
	})
}

func TestParcel_EnsureQuotable(t *testing.T) {
	completeAddr := kernel.MustNewAddress("1200 Harbor Blvd", "Doral", "FL", "33126")

	t.Run("reports_all_missing_preconditions_together", func(t *testing.T) {
		p := newWarehouseParcel(t)
		incomplete, err := kernel.NewAddress("", "Doral", "", "")
		require.NoError(t, err)

		quoteErr := p.EnsureQuotable(incomplete, time.Now(), testPolicy)

		require.Error(t, quoteErr)
		assert.ErrorIs(t, quoteErr, errs.ErrValidation)
		assert.Contains(t, quoteErr.Error(), "no invoice")
		assert.Contains(t, quoteErr.Error(), "not staff-verified")
		assert.Contains(t, quoteErr.Error(), "address is incomplete")
	})

	t.Run("storage_debt_blocks_with_remedy", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())

		err := p.EnsureQuotable(completeAddr, p.ReceivedAt().AddDate(0, 0, 45), testPolicy)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrBlockedAccount)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), "pay the debt first")
	})

	t.Run("passes_with_all_gates_satisfied", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())

		require.NoError(t, p.EnsureQuotable(completeAddr, time.Now(), testPolicy))
	})
}

func TestParcel_DeliveryTrack(t *testing.T) {
	newPaid := func(t *testing.T) *parcel.Parcel {
		t.Helper()
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())
		require.NoError(t, p.RequestIndividualShipping(kernel.NewUUID()))
		require.NoError(t, p.MarkPaid())
		return p
	}

	t.Run("dispatch_requires_tracking_number", func(t *testing.T) {
		p := newPaid(t)

		err := p.MarkDispatched("")

		require.Error(t, err)
		assert.Equal(t, parcel.Paid, p.Status())
	})

	t.Run("delivery_requires_proof_photo", func(t *testing.T) {
		p := newPaid(t)
		require.NoError(t, p.MarkDispatched("CS-ABC123"))
		require.NoError(t, p.MarkInTransit())
		require.NoError(t, p.MarkOutForDelivery())

		err := p.MarkDelivered("")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, parcel.OutForDelivery, p.Status())

		require.NoError(t, p.MarkDelivered("photos/pod.jpg"))
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.Equal(t, "photos/pod.jpg", p.DeliveryProofRef())
	})

	t.Run("cancel_after_payment_is_rejected", func(t *testing.T) {
		p := newPaid(t)

		err := p.Cancel()

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestParcel_ConsolidationMembership(t *testing.T) {
	t.Run("solicit_links_shipment", func(t *testing.T) {
		p := newWarehouseParcel(t)
		shipmentID := kernel.NewUUID()

		require.NoError(t, p.SolicitForConsolidation(shipmentID))

		assert.Equal(t, parcel.SolicitedForConsolidation, p.Status())
		require.NotNil(t, p.ShipmentID())
		assert.True(t, p.ShipmentID().IsEqual(shipmentID))
	})

	t.Run("return_to_warehouse_clears_link", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.SolicitForConsolidation(kernel.NewUUID()))

		require.NoError(t, p.ReturnToWarehouse())

		assert.Equal(t, parcel.InWarehouse, p.Status())
		assert.Nil(t, p.ShipmentID())
	})

	t.Run("solicit_outside_warehouse_is_rejected", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())
		require.NoError(t, p.RequestIndividualShipping(kernel.NewUUID()))

		err := p.SolicitForConsolidation(kernel.NewUUID())

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestParcel_RequestIndividualShipping(t *testing.T) {
	t.Run("links_shipment_and_moves_en_route", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())
		shipmentID := kernel.NewUUID()

		require.NoError(t, p.RequestIndividualShipping(shipmentID))

		assert.Equal(t, parcel.EnRouteToShip, p.Status())
		require.NotNil(t, p.ShipmentID())
		assert.True(t, p.ShipmentID().IsEqual(shipmentID))
	})

	t.Run("requires_invoice_and_verified_value", func(t *testing.T) {
		p := newWarehouseParcel(t)

		err := p.RequestIndividualShipping(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "no invoice")
		assert.Contains(t, err.Error(), "not staff-verified")
		assert.Equal(t, parcel.InWarehouse, p.Status(), "failed track selection must not mutate state")
		assert.Nil(t, p.ShipmentID())
	})

	t.Run("back_out_returns_to_warehouse", func(t *testing.T) {
		p := newWarehouseParcel(t)
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
		require.NoError(t, p.VerifyDeclaredValue())
		require.NoError(t, p.RequestIndividualShipping(kernel.NewUUID()))

		require.NoError(t, p.ReturnToWarehouse())

		assert.Equal(t, parcel.InWarehouse, p.Status())
		assert.Nil(t, p.ShipmentID())
	})
}
