package commands_test

import (
	"strings"
	"testing"
	"time"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// paidShipment builds a paid shipment with its members ready for dispatch.
func paidShipment(t *testing.T, internal bool) (*shipment.Shipment, []*parcel.Parcel) {
	t.Helper()

	customerID := kernel.NewUUID()
	members := []*parcel.Parcel{
		quotableParcel(t, customerID, 24*time.Hour),
		quotableParcel(t, customerID, 24*time.Hour),
	}
	sh := measuredShipment(t, customerID, members)

	code := "FASTSHIP"
	if internal {
		code = "CARGOLINK"
	}
	c, err := carrier.NewCarrier(code, "Carrier", "standard", internal)
	require.NoError(t, err)
	require.NoError(t, sh.SelectCarrier(c))
	require.NoError(t, sh.MarkPaid(shipment.Charges{Total: 100}, "pay_1"))
	for _, member := range members {
		require.NoError(t, member.MarkPaid())
	}
	return sh, members
}

func expectDispatchFlow(
	ctx any,
	uow *MockFreightUoW,
	shipmentRepo *MockShipmentRepository,
	parcelRepo *MockParcelRepository,
	sh *shipment.Shipment,
	members []*parcel.Parcel,
) {
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, sh.ID()).Return(sh, nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("GetAllByShipmentID", mock.Anything, sh.ID()).Return(members, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Times(len(members))
	shipmentRepo.On("Update", mock.Anything, sh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
}

func TestDispatchShipmentCommandHandler_Handle_ExternalCarrier(t *testing.T) {
	ctx := t.Context()
	sh, members := paidShipment(t, false)

	cmd, err := commands.NewDispatchShipmentCommand(sh.ID(), "FS-998877")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockFreightUoW)
	expectDispatchFlow(ctx, uow, shipmentRepo, parcelRepo, sh, members)

	factory := new(MockFreightUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, "FS-998877", sh.MasterTrackingCode())
	assert.Equal(t, shipment.Dispatched, sh.Status())
	for _, member := range members {
		assert.Equal(t, parcel.Dispatched, member.Status())
	}
}

func TestDispatchShipmentCommandHandler_Handle_ExternalCarrierRequiresTracking(t *testing.T) {
	ctx := t.Context()
	sh, members := paidShipment(t, false)

	cmd, err := commands.NewDispatchShipmentCommand(sh.ID(), "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockFreightUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, sh.ID()).Return(sh, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFreightUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchShipmentCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrTrackingNumberIsRequired)
	assert.Equal(t, shipment.Paid, sh.Status())
	for _, member := range members {
		assert.Equal(t, parcel.Paid, member.Status())
	}
}

func TestDispatchShipmentCommandHandler_Handle_HouseFleetGeneratesTracking(t *testing.T) {
	ctx := t.Context()
	sh, members := paidShipment(t, true)

	cmd, err := commands.NewDispatchShipmentCommand(sh.ID(), "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockFreightUoW)
	expectDispatchFlow(ctx, uow, shipmentRepo, parcelRepo, sh, members)

	factory := new(MockFreightUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, strings.HasPrefix(sh.MasterTrackingCode(), "CS-"))
	assert.Equal(t, shipment.Dispatched, sh.Status())
}
