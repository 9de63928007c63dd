package commands_test

import (
	"errors"
	"testing"
	"time"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quoteFlowMocks(ctx any, sh *shipment.Shipment, members []*parcel.Parcel) (*MockFreightUoW, *MockFreightUoWFactory) {
	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockFreightUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, sh.ID()).Return(sh, nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("GetAllByShipmentID", mock.Anything, sh.ID()).Return(members, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockFreightUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestRequestQuoteCommandHandler_Handle_CheapestOption(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	members := []*parcel.Parcel{
		quotableParcel(t, customerID, 24*time.Hour),
		quotableParcel(t, customerID, 24*time.Hour),
	}
	sh := measuredShipment(t, customerID, members)
	_, factory := quoteFlowMocks(ctx, sh, members)

	cmd, err := commands.NewRequestQuoteCommand(sh.ID(), testDestination(), "", false)
	require.NoError(t, err)

	rates := new(MockRateService)
	rates.On("GetRates", mock.Anything, sh.FinalWeightLb(), sh.FinalDims(), testDestination()).
		Return(testRateOptions(), nil).Once()

	h := commands.NewRequestQuoteCommandHandler(factory, rates, flatFee, testStoragePolicy)
	quote, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Cheapest option is the house fleet at 90, which waives handling.
	assert.InDelta(t, 90.0, quote.BaseFare, 0.001)
	assert.Zero(t, quote.HandlingFee)
	assert.InDelta(t, 95.0, quote.Total, 0.001)
	assert.Empty(t, quote.Notices)
}

func TestRequestQuoteCommandHandler_Handle_RateOutageUsesFallback(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	members := []*parcel.Parcel{
		quotableParcel(t, customerID, 24*time.Hour),
		quotableParcel(t, customerID, 24*time.Hour),
	}
	sh := measuredShipment(t, customerID, members)
	_, factory := quoteFlowMocks(ctx, sh, members)

	cmd, err := commands.NewRequestQuoteCommand(sh.ID(), testDestination(), "", false)
	require.NoError(t, err)

	fallback := []ports.RateOption{
		{CarrierCode: "CARGOLINK", CarrierName: "CargoLink Express", ServiceLevel: "standard", Price: 100, Internal: true},
	}
	rates := new(MockRateService)
	rates.On("GetRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(fallback, errs.NewExternalServiceError("rates", errors.New("502"))).Once()

	h := commands.NewRequestQuoteCommandHandler(factory, rates, flatFee, testStoragePolicy)
	quote, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, quote.BaseFare, 0.001)
	require.Len(t, quote.Notices, 1)
	assert.Contains(t, quote.Notices[0], "fallback")
}

func TestRequestQuoteCommandHandler_Handle_UnmeasuredShipment(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	members := []*parcel.Parcel{
		quotableParcel(t, customerID, 24*time.Hour),
		quotableParcel(t, customerID, 24*time.Hour),
	}

	memberIDs := []kernel.UUID{members[0].ID(), members[1].ID()}
	sh, err := shipment.NewShipment(kernel.NewUUID(), customerID, memberIDs)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockFreightUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, sh.ID()).Return(sh, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockFreightUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRequestQuoteCommand(sh.ID(), testDestination(), "", false)
	require.NoError(t, err)

	rates := new(MockRateService)

	h := commands.NewRequestQuoteCommandHandler(factory, rates, flatFee, testStoragePolicy)
	_, err = h.Handle(ctx, cmd)

	var conflict *errs.StateConflictError
	require.ErrorAs(t, err, &conflict)
	rates.AssertNotCalled(t, "GetRates")
}

func TestRequestQuoteCommandHandler_Handle_PromoOnCarrierPortion(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	members := []*parcel.Parcel{
		quotableParcel(t, customerID, 24*time.Hour),
		quotableParcel(t, customerID, 24*time.Hour),
	}
	sh := measuredShipment(t, customerID, members)
	_, factory := quoteFlowMocks(ctx, sh, members)

	cmd, err := commands.NewRequestQuoteCommand(sh.ID(), testDestination(), "FASTSHIP", true)
	require.NoError(t, err)

	rates := new(MockRateService)
	rates.On("GetRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testRateOptions(), nil).Once()

	h := commands.NewRequestQuoteCommandHandler(factory, rates, flatFee, testStoragePolicy)
	quote, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// The 120 carrier charge clears the promo minimum: credit applies.
	assert.InDelta(t, services.PromoCredit, quote.Discount, 0.001)
	assert.InDelta(t, 110.0, quote.Total, 0.001)
}
