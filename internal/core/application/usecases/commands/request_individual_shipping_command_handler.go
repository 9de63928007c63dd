package commands

import (
	"context"

	"cargolink/internal/core/domain/model/shipment"
)

// RequestIndividualShippingCommandHandler routes a warehouse parcel onto the
// individual shipping track. Creates the single-member shipment and links
// the parcel to it in one transaction, so measurement, quoting, and payment
// then run through the regular freight pipeline.
type RequestIndividualShippingCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewRequestIndividualShippingCommandHandler creates a handler for the track selection.
func NewRequestIndividualShippingCommandHandler(uowFactory FreightUoWFactory) RequestIndividualShippingCommandHandler {
	return RequestIndividualShippingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the track selection.
// The parcel must carry an invoice and a staff-verified declared value
// before it can leave the warehouse on its own; the aggregate enforces both.
func (h RequestIndividualShippingCommandHandler) Handle(ctx context.Context, cmd RequestIndividualShippingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	sh, err := shipment.NewIndividualShipment(cmd.ShipmentID(), aggregate.CustomerID(), aggregate.ID())
	if err != nil {
		return err
	}

	if err = aggregate.RequestIndividualShipping(cmd.ShipmentID()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, sh); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
