package commands

import (
	"context"

	"cargolink/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler handles the business logic for parcel
// pre-alerts. Registers the parcel in pre-alerted status so warehouse
// intake can match it against arriving packages.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel pre-alert operations.
// Requires a ParcelUoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel pre-alert command.
// Creates the parcel in pre-alerted status with a fresh internal tracking code.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
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

	aggregate, err := parcel.NewParcel(
		cmd.ParcelID(), cmd.CustomerID(),
		cmd.CarrierTrackingCode(), cmd.DeclaredValue(),
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
