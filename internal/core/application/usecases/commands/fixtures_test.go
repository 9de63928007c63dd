package commands_test

import (
	"testing"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var testStoragePolicy = parcel.StoragePolicy{FreeDays: 30, DailyRate: 1.0}

func testDestination() kernel.Address {
	return kernel.MustNewAddress("742 Evergreen Terrace", "Springfield", "IL", "62704")
}

// quotableParcel builds a parcel that clears every quoting prerequisite:
// received receivedAgo in the past, measured, invoice attached, value
// verified.
func quotableParcel(t *testing.T, customerID kernel.UUID, receivedAgo time.Duration) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(kernel.NewUUID(), customerID, "1Z999AA10123456784", 50)
	require.NoError(t, err)
	require.NoError(t, p.Receive(time.Now().Add(-receivedAgo), "photos/intake.jpg"))
	require.NoError(t, p.RecordMeasurement(12, parcel.Dimensions{LengthIn: 10, WidthIn: 8, HeightIn: 6}))
	require.NoError(t, p.AttachInvoice("docs/invoice.pdf"))
	require.NoError(t, p.VerifyDeclaredValue())
	return p
}

// measuredShipment builds a shipment in processing status with a final
// measurement, linked to the given member parcels.
func measuredShipment(t *testing.T, customerID kernel.UUID, members []*parcel.Parcel) *shipment.Shipment {
	t.Helper()

	memberIDs := make([]kernel.UUID, 0, len(members))
	for _, p := range members {
		memberIDs = append(memberIDs, p.ID())
	}

	sh, err := shipment.NewShipment(kernel.NewUUID(), customerID, memberIDs)
	require.NoError(t, err)

	for _, p := range members {
		require.NoError(t, p.SolicitForConsolidation(sh.ID()))
		require.NoError(t, p.BeginConsolidation())
	}

	require.NoError(t, sh.ProcessConsolidation(24, parcel.Dimensions{LengthIn: 16, WidthIn: 12, HeightIn: 10}))
	return sh
}
