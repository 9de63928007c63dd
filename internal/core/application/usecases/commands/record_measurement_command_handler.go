package commands

import (
	"context"
)

// RecordMeasurementCommandHandler handles staff measurement entry.
// Moves the parcel from receiving into the warehouse.
type RecordMeasurementCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewRecordMeasurementCommandHandler creates a handler for measurement operations.
func NewRecordMeasurementCommandHandler(uowFactory ParcelUoWFactory) RecordMeasurementCommandHandler {
	return RecordMeasurementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the measurement command.
func (h RecordMeasurementCommandHandler) Handle(ctx context.Context, cmd RecordMeasurementCommand) error {
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

	if err = aggregate.RecordMeasurement(cmd.WeightLb(), cmd.Dims()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
