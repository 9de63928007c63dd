package commands

import (
	"context"
)

// ProcessConsolidationCommandHandler handles the staff repacking step.
// Records the final shipment measurement and moves member parcels to
// consolidation-in-progress in the same transaction. Individual shipments
// skip the member move: their one parcel stays en route to ship until paid,
// only the final measurement is recorded.
type ProcessConsolidationCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewProcessConsolidationCommandHandler creates a handler for repacking operations.
func NewProcessConsolidationCommandHandler(uowFactory FreightUoWFactory) ProcessConsolidationCommandHandler {
	return ProcessConsolidationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the repacking command.
func (h ProcessConsolidationCommandHandler) Handle(ctx context.Context, cmd ProcessConsolidationCommand) error {
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

	if err = sh.ProcessConsolidation(cmd.WeightLb(), cmd.Dims()); err != nil {
		return err
	}

	if !sh.IsIndividual() {
		parcelRepo := uow.ParcelRepository()
		members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
		if err != nil {
			return err
		}

		for _, member := range members {
			if err = member.BeginConsolidation(); err != nil {
				return err
			}
			if err = parcelRepo.Update(ctx, member); err != nil {
				return err
			}
		}
	}

	if err = shipmentRepo.Update(ctx, sh); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
