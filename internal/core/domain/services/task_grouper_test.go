package services_test

import (
	"testing"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dispatchedMember builds a parcel on the active delivery track inside the
// given shipment.
func dispatchedMember(t *testing.T, customerID, shipmentID kernel.UUID) *parcel.Parcel {
	t.Helper()

	p := warehouseParcel(t, customerID, 10, true)
	require.NoError(t, p.SolicitForConsolidation(shipmentID))
	require.NoError(t, p.BeginConsolidation())
	require.NoError(t, p.MarkPaid())
	require.NoError(t, p.MarkDispatched("CS-GROUP1"))
	return p
}

// dispatchedLoner builds a parcel shipped on its own, with its single-member
// shipment, both on the active delivery track.
func dispatchedLoner(t *testing.T, customerID kernel.UUID) (*parcel.Parcel, *shipment.Shipment) {
	t.Helper()

	p := warehouseParcel(t, customerID, 10, true)
	require.NoError(t, p.VerifyDeclaredValue())

	sh, err := shipment.NewIndividualShipment(kernel.NewUUID(), customerID, p.ID())
	require.NoError(t, err)

	require.NoError(t, p.RequestIndividualShipping(sh.ID()))
	require.NoError(t, p.MarkPaid())
	require.NoError(t, p.MarkDispatched("CS-LONER1"))
	return p, sh
}

// orphanDispatched restores a dispatched parcel with no shipment link, the
// shape of legacy rows predating shipment-linked individual shipping.
func orphanDispatched(t *testing.T, customerID kernel.UUID) *parcel.Parcel {
	t.Helper()

	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), customerID,
		"CL-ORPHAN1", "",
		10, parcel.Dimensions{LengthIn: 10, WidthIn: 10, HeightIn: 10},
		50, true,
		"docs/invoice.pdf", "photos/intake.jpg", "",
		nil, nil,
		nil,
		parcel.Dispatched,
	)
	require.NoError(t, err)
	return p
}

func liveShipment(t *testing.T, customerID kernel.UUID, memberIDs []kernel.UUID) *shipment.Shipment {
	t.Helper()

	sh, err := shipment.NewShipment(kernel.NewUUID(), customerID, memberIDs)
	require.NoError(t, err)
	return sh
}

func TestTaskGrouper_GroupTasks(t *testing.T) {
	grouper := services.NewTaskGrouper()

	t.Run("folds_consolidation_members_into_one_task", func(t *testing.T) {
		customerID := kernel.NewUUID()
		sh := liveShipment(t, customerID, []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()})

		member1 := dispatchedMember(t, customerID, sh.ID())
		member2 := dispatchedMember(t, customerID, sh.ID())
		loner, lonerSh := dispatchedLoner(t, customerID)

		tasks := grouper.GroupTasks(
			[]*parcel.Parcel{member1, member2, loner},
			[]*shipment.Shipment{sh, lonerSh},
		)

		// 3 parcels, 2 sharing one live shipment: exactly 2 task entries.
		require.Len(t, tasks, 2)

		assert.Equal(t, sh.Code(), tasks[0].ShipmentCode)
		assert.Equal(t, 2, tasks[0].Count)
		assert.Equal(t, []string{member1.TrackingCode(), member2.TrackingCode()}, tasks[0].TrackingCodes)

		require.NotNil(t, tasks[1].ShipmentID)
		assert.True(t, tasks[1].ShipmentID.IsEqual(lonerSh.ID()))
		assert.Equal(t, 1, tasks[1].Count)
		assert.Equal(t, []string{loner.TrackingCode()}, tasks[1].TrackingCodes)
	})

	t.Run("skips_delivered_shipments_even_with_stale_parcel_rows", func(t *testing.T) {
		customerID := kernel.NewUUID()
		sh := liveShipment(t, customerID, []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()})
		require.NoError(t, sh.ProcessConsolidation(20, parcel.Dimensions{LengthIn: 10, WidthIn: 10, HeightIn: 10}))
		own, err := carrier.NewCarrier("CARGOLINK", "CargoLink Express", "standard", true)
		require.NoError(t, err)
		require.NoError(t, sh.SelectCarrier(own))
		require.NoError(t, sh.MarkPaid(shipment.Charges{Total: 40}, "pay_1"))
		require.NoError(t, sh.MarkDispatched("CS-DONE"))
		require.NoError(t, sh.MarkInTransit())
		require.NoError(t, sh.MarkDelivered("photos/pod.jpg"))

		// Stale row: parcel still Dispatched but its shipment is Delivered.
		stale := dispatchedMember(t, customerID, sh.ID())

		tasks := grouper.GroupTasks([]*parcel.Parcel{stale}, []*shipment.Shipment{sh})

		assert.Empty(t, tasks)
	})

	t.Run("ignores_parcels_off_the_delivery_track", func(t *testing.T) {
		customerID := kernel.NewUUID()
		shelved := warehouseParcel(t, customerID, 10, true)

		tasks := grouper.GroupTasks([]*parcel.Parcel{shelved}, nil)

		assert.Empty(t, tasks)
	})

	t.Run("individual_shipments_stay_separate_tasks", func(t *testing.T) {
		customerID := kernel.NewUUID()
		a, shA := dispatchedLoner(t, customerID)
		b, shB := dispatchedLoner(t, customerID)

		tasks := grouper.GroupTasks([]*parcel.Parcel{a, b}, []*shipment.Shipment{shA, shB})

		require.Len(t, tasks, 2)
	})

	t.Run("legacy_unlinked_parcel_is_its_own_task", func(t *testing.T) {
		customerID := kernel.NewUUID()
		orphan := orphanDispatched(t, customerID)

		tasks := grouper.GroupTasks([]*parcel.Parcel{orphan}, nil)

		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].ShipmentID)
		assert.Equal(t, []string{orphan.TrackingCode()}, tasks[0].TrackingCodes)
	})

	t.Run("parcel_referencing_unknown_shipment_is_skipped", func(t *testing.T) {
		customerID := kernel.NewUUID()
		orphan := dispatchedMember(t, customerID, kernel.NewUUID())

		tasks := grouper.GroupTasks([]*parcel.Parcel{orphan}, nil)

		assert.Empty(t, tasks)
	})
}
