package commands

import (
	"context"
)

// MarkOutForDeliveryCommandHandler moves a parcel to out-for-delivery on
// the final-mile leg.
type MarkOutForDeliveryCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewMarkOutForDeliveryCommandHandler creates a handler for final-mile updates.
func NewMarkOutForDeliveryCommandHandler(uowFactory ParcelUoWFactory) MarkOutForDeliveryCommandHandler {
	return MarkOutForDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the final-mile update.
func (h MarkOutForDeliveryCommandHandler) Handle(ctx context.Context, cmd MarkOutForDeliveryCommand) error {
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

	if err = aggregate.MarkOutForDelivery(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
