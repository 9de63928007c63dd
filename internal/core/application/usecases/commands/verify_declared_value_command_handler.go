package commands

import (
	"context"
)

// VerifyDeclaredValueCommandHandler handles the staff verification gate.
type VerifyDeclaredValueCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewVerifyDeclaredValueCommandHandler creates a handler for value verification.
func NewVerifyDeclaredValueCommandHandler(uowFactory ParcelUoWFactory) VerifyDeclaredValueCommandHandler {
	return VerifyDeclaredValueCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the verification command.
func (h VerifyDeclaredValueCommandHandler) Handle(ctx context.Context, cmd VerifyDeclaredValueCommand) error {
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

	if err = aggregate.VerifyDeclaredValue(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
