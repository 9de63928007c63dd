package shipment_test

import (
	"testing"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberIDs(n int) []kernel.UUID {
	ids := make([]kernel.UUID, n)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}
	return ids
}

func internalCarrier(t *testing.T) carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier("CARGOLINK", "CargoLink Express", "standard", true)
	require.NoError(t, err)
	return c
}

func newProcessed(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(3))
	require.NoError(t, err)
	require.NoError(t, s.ProcessConsolidation(45, parcel.Dimensions{LengthIn: 24, WidthIn: 18, HeightIn: 18}))
	require.NoError(t, s.SelectCarrier(internalCarrier(t)))
	return s
}

func TestNewShipment(t *testing.T) {
	t.Run("creates_requested_shipment_with_code", func(t *testing.T) {
		members := memberIDs(3)

		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), members)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Requested, s.Status())
		assert.Equal(t, 3, s.MemberCount())
		assert.False(t, s.IsIndividual())
		assert.NotEmpty(t, s.Code())
		assert.True(t, s.ContainsParcel(members[0]))
		assert.False(t, s.ContainsParcel(kernel.NewUUID()))
	})

	t.Run("rejects_single_parcel_selection", func(t *testing.T) {
		_, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(1))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_eight_parcel_selection", func(t *testing.T) {
		_, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(8))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("individual_shipment_holds_one_member", func(t *testing.T) {
		s, err := shipment.NewIndividualShipment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		assert.True(t, s.IsIndividual())
		assert.Equal(t, 1, s.MemberCount())
	})
}

func TestShipment_ProcessConsolidation(t *testing.T) {
	t.Run("records_measurement_and_activates_for_payment", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(2))
		require.NoError(t, err)

		require.NoError(t, s.ProcessConsolidation(80, parcel.Dimensions{LengthIn: 30, WidthIn: 20, HeightIn: 20}))

		assert.Equal(t, shipment.Processing, s.Status())
		assert.True(t, s.IsMeasured())
		assert.InDelta(t, 80, s.FinalWeightLb(), 0.001)
	})

	t.Run("rejects_weight_over_the_box_cap", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(2))
		require.NoError(t, err)

		err = s.ProcessConsolidation(120, parcel.Dimensions{LengthIn: 30, WidthIn: 20, HeightIn: 20})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, shipment.Requested, s.Status(), "failed processing must not mutate state")
	})

	t.Run("cannot_process_twice", func(t *testing.T) {
		s := newProcessed(t)

		err := s.ProcessConsolidation(50, parcel.Dimensions{LengthIn: 1, WidthIn: 1, HeightIn: 1})

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestShipment_Payment(t *testing.T) {
	charges := shipment.Charges{Subtotal: 61, Insurance: 15, Total: 76}

	t.Run("requires_carrier_selection", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(2))
		require.NoError(t, err)
		require.NoError(t, s.ProcessConsolidation(45, parcel.Dimensions{LengthIn: 1, WidthIn: 1, HeightIn: 1}))

		err = s.MarkPaid(charges, "pay_123")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("requires_processed_measurement", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(2))
		require.NoError(t, err)
		require.NoError(t, s.SelectCarrier(internalCarrier(t)))

		err = s.MarkPaid(charges, "pay_123")

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("freezes_charges_and_payment_id", func(t *testing.T) {
		s := newProcessed(t)

		require.NoError(t, s.MarkPaid(charges, "pay_123"))

		assert.Equal(t, shipment.Paid, s.Status())
		require.NotNil(t, s.Charges())
		assert.InDelta(t, 76, s.Charges().Total, 0.001)
		assert.Equal(t, "pay_123", s.PaymentID())
	})

	t.Run("double_payment_is_a_state_conflict", func(t *testing.T) {
		s := newProcessed(t)
		require.NoError(t, s.MarkPaid(charges, "pay_123"))

		err := s.MarkPaid(charges, "pay_456")

		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, "pay_123", s.PaymentID(), "first capture must stand")
	})

	t.Run("carrier_cannot_change_after_payment", func(t *testing.T) {
		s := newProcessed(t)
		require.NoError(t, s.MarkPaid(charges, "pay_123"))
		external, err := carrier.NewCarrier("DHL", "DHL Express", "express", false)
		require.NoError(t, err)

		err = s.SelectCarrier(external)

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestShipment_DeliveryTrack(t *testing.T) {
	newPaid := func(t *testing.T) *shipment.Shipment {
		t.Helper()
		s := newProcessed(t)
		require.NoError(t, s.MarkPaid(shipment.Charges{Total: 50}, "pay_1"))
		return s
	}

	t.Run("dispatch_requires_tracking_number", func(t *testing.T) {
		s := newPaid(t)

		err := s.MarkDispatched("")

		require.Error(t, err)
		assert.Equal(t, shipment.Paid, s.Status())
	})

	t.Run("delivery_requires_proof", func(t *testing.T) {
		s := newPaid(t)
		require.NoError(t, s.MarkDispatched("CS-XYZ789"))
		require.NoError(t, s.MarkInTransit())

		err := s.MarkDelivered("")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)

		require.NoError(t, s.MarkDelivered("photos/pod.jpg"))
		assert.True(t, s.Status().IsDelivered())
	})

	t.Run("cancel_before_payment_only", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), memberIDs(2))
		require.NoError(t, err)
		require.NoError(t, s.Cancel())
		assert.Equal(t, shipment.Canceled, s.Status())

		paid := newPaid(t)
		assert.ErrorIs(t, paid.Cancel(), errs.ErrStateConflict)
	})
}
