package services_test

import (
	"testing"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warehouseParcel builds a measured parcel in the warehouse, optionally with
// an invoice attached.
func warehouseParcel(t *testing.T, customerID kernel.UUID, weightLb float64, withInvoice bool) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(kernel.NewUUID(), customerID, "", 50)
	require.NoError(t, err)
	require.NoError(t, p.Receive(time.Now(), "photos/intake.jpg"))
	require.NoError(t, p.RecordMeasurement(weightLb, parcel.Dimensions{LengthIn: 10, WidthIn: 10, HeightIn: 10}))
	if withInvoice {
		require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
	}
	return p
}

func warehouseParcels(t *testing.T, customerID kernel.UUID, weights ...float64) []*parcel.Parcel {
	t.Helper()
	out := make([]*parcel.Parcel, 0, len(weights))
	for _, w := range weights {
		out = append(out, warehouseParcel(t, customerID, w, true))
	}
	return out
}

func TestConsolidationEngine_ValidateSelection(t *testing.T) {
	engine := services.NewConsolidationEngine()
	customerID := kernel.NewUUID()

	t.Run("single_parcel_points_to_individual_flow", func(t *testing.T) {
		err := engine.ValidateSelection(warehouseParcels(t, customerID, 10))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "individual shipment flow")
	})

	t.Run("eight_parcels_echoes_the_count", func(t *testing.T) {
		err := engine.ValidateSelection(warehouseParcels(t, customerID, 5, 5, 5, 5, 5, 5, 5, 5))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "8 parcels")
	})

	t.Run("missing_invoices_name_the_offenders", func(t *testing.T) {
		withInvoice := warehouseParcel(t, customerID, 10, true)
		without := warehouseParcel(t, customerID, 10, false)

		err := engine.ValidateSelection([]*parcel.Parcel{withInvoice, without})

		require.Error(t, err)
		assert.Contains(t, err.Error(), without.TrackingCode())
		assert.NotContains(t, err.Error(), withInvoice.TrackingCode())
	})

	t.Run("overweight_selection_is_rejected", func(t *testing.T) {
		err := engine.ValidateSelection(warehouseParcels(t, customerID, 60, 45))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "105.0 lb")
	})

	t.Run("all_violations_reported_together", func(t *testing.T) {
		// 8 parcels, one without invoice, combined weight over the cap.
		parcels := warehouseParcels(t, customerID, 20, 20, 20, 20, 20, 20, 20)
		parcels = append(parcels, warehouseParcel(t, customerID, 20, false))

		err := engine.ValidateSelection(parcels)

		require.Error(t, err)
		msg := err.Error()
		assert.Contains(t, msg, "8 parcels")
		assert.Contains(t, msg, "no invoice")
		assert.Contains(t, msg, "consolidated-box limit")
	})

	t.Run("valid_selection_passes", func(t *testing.T) {
		require.NoError(t, engine.ValidateSelection(warehouseParcels(t, customerID, 30, 40, 25)))
	})

	t.Run("exactly_at_the_weight_cap_passes", func(t *testing.T) {
		require.NoError(t, engine.ValidateSelection(warehouseParcels(t, customerID, 60, 40)))
	})
}

func TestConsolidationEngine_WeightUtilization(t *testing.T) {
	engine := services.NewConsolidationEngine()
	customerID := kernel.NewUUID()

	parcels := warehouseParcels(t, customerID, 30, 45)

	assert.InDelta(t, 75.0, engine.WeightUtilization(parcels), 0.001)
	assert.InDelta(t, 75.0, engine.CombinedWeightLb(parcels), 0.001)
}

func TestConsolidationEngine_Consolidate(t *testing.T) {
	engine := services.NewConsolidationEngine()

	t.Run("transitions_all_members_atomically", func(t *testing.T) {
		customerID := kernel.NewUUID()
		parcels := warehouseParcels(t, customerID, 20, 30, 25)
		shipmentID := kernel.NewUUID()

		sh, err := engine.Consolidate(shipmentID, customerID, parcels)

		require.NoError(t, err)
		assert.Equal(t, shipment.Requested, sh.Status())
		assert.Equal(t, 3, sh.MemberCount())
		for _, p := range parcels {
			assert.Equal(t, parcel.SolicitedForConsolidation, p.Status())
			require.NotNil(t, p.ShipmentID())
			assert.True(t, p.ShipmentID().IsEqual(sh.ID()))
		}
	})

	t.Run("stale_selection_is_a_state_conflict_with_no_mutation", func(t *testing.T) {
		customerID := kernel.NewUUID()
		parcels := warehouseParcels(t, customerID, 20, 30)
		// Staff recalled one parcel after the customer assembled the selection.
		require.NoError(t, parcels[1].RequestStorePickup())

		_, err := engine.Consolidate(kernel.NewUUID(), customerID, parcels)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), parcels[1].TrackingCode())
		assert.Equal(t, parcel.InWarehouse, parcels[0].Status(), "no partial mutation")
	})

	t.Run("resubmitting_a_consolidated_selection_fails", func(t *testing.T) {
		customerID := kernel.NewUUID()
		parcels := warehouseParcels(t, customerID, 20, 30)

		_, err := engine.Consolidate(kernel.NewUUID(), customerID, parcels)
		require.NoError(t, err)

		_, err = engine.Consolidate(kernel.NewUUID(), customerID, parcels)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("invalid_selection_leaves_parcels_untouched", func(t *testing.T) {
		customerID := kernel.NewUUID()
		parcels := warehouseParcels(t, customerID, 60, 55)

		_, err := engine.Consolidate(kernel.NewUUID(), customerID, parcels)

		require.Error(t, err)
		for _, p := range parcels {
			assert.Equal(t, parcel.InWarehouse, p.Status())
		}
	})
}
