package commands

import (
	"context"

	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/services"
)

// ConsolidateParcelsCommandHandler orchestrates parcel consolidation.
// Loads the selected parcels, runs the consolidation engine, and persists
// the new shipment together with every member transition in one
// transaction. Either all parcels move or none do.
type ConsolidateParcelsCommandHandler struct {
	uowFactory FreightUoWFactory
}

// NewConsolidateParcelsCommandHandler creates a handler for consolidation
// operations. Requires a FreightUoWFactory for coordinating transactional
// updates across shipment and parcel repositories.
func NewConsolidateParcelsCommandHandler(uowFactory FreightUoWFactory) ConsolidateParcelsCommandHandler {
	return ConsolidateParcelsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the consolidation command.
// Rule violations are collected by the engine and reported together in a
// single ValidationError naming every offending parcel.
func (h ConsolidateParcelsCommandHandler) Handle(ctx context.Context, cmd ConsolidateParcelsCommand) error {
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
	parcels := make([]*parcel.Parcel, 0, len(cmd.ParcelIDs()))
	for _, id := range cmd.ParcelIDs() {
		p, err := parcelRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		parcels = append(parcels, p)
	}

	sh, err := services.NewConsolidationEngine().Consolidate(cmd.ShipmentID(), cmd.CustomerID(), parcels)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, sh); err != nil {
		return err
	}

	for _, p := range parcels {
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
