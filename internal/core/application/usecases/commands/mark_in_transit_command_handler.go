package commands

import (
	"context"
)

// MarkInTransitCommandHandler moves a dispatched shipment and its member
// parcels to in-transit in one transaction.
type MarkInTransitCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewMarkInTransitCommandHandler creates a handler for transit updates.
func NewMarkInTransitCommandHandler(uowFactory FreightUoWFactory) MarkInTransitCommandHandler {
	return MarkInTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transit update.
func (h MarkInTransitCommandHandler) Handle(ctx context.Context, cmd MarkInTransitCommand) error {
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

	if err = sh.MarkInTransit(); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return err
	}

	for _, member := range members {
		if err = member.MarkInTransit(); err != nil {
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
