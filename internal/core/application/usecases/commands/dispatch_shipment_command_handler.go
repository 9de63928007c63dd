package commands

import (
	"context"
	"errors"

	"cargolink/internal/core/domain/model/kernel"
)

var ErrTrackingNumberIsRequired = errors.New("tracking number is required for external carriers")

// DispatchShipmentCommandHandler handles shipment dispatch.
// External carriers must supply a master tracking number; house-fleet
// shipments get a generated one. Member parcels are dispatched with the
// same tracking number in one transaction.
type DispatchShipmentCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewDispatchShipmentCommandHandler creates a handler for dispatch operations.
func NewDispatchShipmentCommandHandler(uowFactory FreightUoWFactory) DispatchShipmentCommandHandler {
	return DispatchShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
func (h DispatchShipmentCommandHandler) Handle(ctx context.Context, cmd DispatchShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	sh, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	trackingNumber := cmd.TrackingNumber()
	if trackingNumber == "" {
		selected := sh.SelectedCarrier()
		if selected == nil || !selected.IsInternal() {
			return ErrTrackingNumberIsRequired
		}
		trackingNumber = kernel.NewShipmentTrackingCode()
	}

	if err = sh.MarkDispatched(trackingNumber); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return err
	}

	for _, member := range members {
		if err = member.MarkDispatched(trackingNumber); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, sh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
