package commands

import (
	"context"
	"time"

	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// ReceiveParcelCommandHandler handles warehouse intake.
// Verifies the intake photo exists in the document store before moving the
// parcel to receiving status.
type ReceiveParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	documents  ports.DocumentStore
	now        func() time.Time
}

// NewReceiveParcelCommandHandler creates a handler for warehouse intake operations.
func NewReceiveParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	documents ports.DocumentStore,
) ReceiveParcelCommandHandler {
	return ReceiveParcelCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		now:        time.Now,
	}
}

// Handle processes the intake command.
// The intake timestamp recorded here starts the storage clock.
func (h ReceiveParcelCommandHandler) Handle(ctx context.Context, cmd ReceiveParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.documents.Exists(ctx, cmd.WarehousePhotoRef())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidError("warehouse photo reference")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.GetByTrackingCode(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	if err = aggregate.Receive(h.now(), cmd.WarehousePhotoRef()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
