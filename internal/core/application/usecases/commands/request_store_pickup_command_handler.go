package commands

import (
	"context"
)

// RequestStorePickupCommandHandler holds a warehouse parcel for customer
// self-pickup.
type RequestStorePickupCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewRequestStorePickupCommandHandler creates a handler for the pickup hold.
func NewRequestStorePickupCommandHandler(uowFactory ParcelUoWFactory) RequestStorePickupCommandHandler {
	return RequestStorePickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup hold.
func (h RequestStorePickupCommandHandler) Handle(ctx context.Context, cmd RequestStorePickupCommand) error {
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

	if err = aggregate.RequestStorePickup(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
