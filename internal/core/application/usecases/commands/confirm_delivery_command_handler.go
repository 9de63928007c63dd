package commands

import (
	"context"

	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler closes shipments on proof of delivery.
// The photo reference is verified against the document store, then the
// shipment and all member parcels move to delivered in one transaction.
type ConfirmDeliveryCommandHandler struct {
	uowFactory FreightUoWFactory
	documents  ports.DocumentStore
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory FreightUoWFactory,
	documents ports.DocumentStore,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

// Handle processes the delivery confirmation.
// A member still marked in transit is stepped through out-for-delivery so
// a missed scan cannot leave the shipment half closed.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.documents.Exists(ctx, cmd.ProofPhotoRef())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidError("proof-of-delivery photo reference")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = sh.MarkDelivered(cmd.ProofPhotoRef()); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return err
	}

	for _, member := range members {
		if member.Status() == parcel.InTransit {
			if err = member.MarkOutForDelivery(); err != nil {
				return err
			}
		}
		if err = member.MarkDelivered(cmd.ProofPhotoRef()); err != nil {
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
