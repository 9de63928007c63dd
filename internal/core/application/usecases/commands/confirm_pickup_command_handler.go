package commands

import (
	"context"

	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// ConfirmPickupCommandHandler records pickup confirmations on local
// requests after verifying the photo evidence exists.
type ConfirmPickupCommandHandler struct {
	uowFactory RequestUoWFactory
	documents  ports.DocumentStore
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmation.
func NewConfirmPickupCommandHandler(
	uowFactory RequestUoWFactory,
	documents ports.DocumentStore,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

// Handle processes the pickup confirmation.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.documents.Exists(ctx, cmd.PhotoRef())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidError("pickup photo reference")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	aggregate, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmPickup(cmd.PhotoRef()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
