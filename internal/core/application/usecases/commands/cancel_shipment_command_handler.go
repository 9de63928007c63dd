package commands

import (
	"context"
)

// CancelShipmentCommandHandler cancels an unpaid shipment. Every member
// parcel returns to the warehouse with its shipment link cleared, so the
// customer can reconsolidate or pick another track. The shipment aggregate
// rejects cancellation at or after payment.
type CancelShipmentCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(uowFactory FreightUoWFactory) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation. Shipment and members move in one
// transaction: either the whole consolidation unwinds or none of it does.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	if err = sh.Cancel(); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return err
	}

	for _, member := range members {
		if err = member.ReturnToWarehouse(); err != nil {
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
