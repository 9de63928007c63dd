package commands

import (
	"context"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
)

// StorageDebtNotice reports one parcel with outstanding storage debt.
type StorageDebtNotice struct {
	ParcelID     kernel.UUID
	CustomerID   kernel.UUID
	TrackingCode string
	Amount       float64
}

// FlagStorageDebtsCommandHandler sweeps the warehouse for parcels whose
// storage debt has started accruing.
type FlagStorageDebtsCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     parcel.StoragePolicy
	now        func() time.Time
}

// NewFlagStorageDebtsCommandHandler creates a handler for the debt sweep.
func NewFlagStorageDebtsCommandHandler(
	uowFactory ParcelUoWFactory,
	policy parcel.StoragePolicy,
) FlagStorageDebtsCommandHandler {
	return FlagStorageDebtsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		now:        time.Now,
	}
}

// Handle runs the sweep and returns a notice per indebted parcel.
// Nothing is mutated; debt stays derived from the intake timestamp so the
// sweep and the quote path can never disagree.
func (h FlagStorageDebtsCommandHandler) Handle(
	ctx context.Context,
	cmd FlagStorageDebtsCommand,
) ([]StorageDebtNotice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.ParcelRepository().GetAllStored(ctx)
	if err != nil {
		return nil, err
	}

	at := h.now()
	notices := make([]StorageDebtNotice, 0)
	for _, p := range stored {
		debt := p.StorageDebt(at, h.policy)
		if debt <= 0 {
			continue
		}

		notices = append(notices, StorageDebtNotice{
			ParcelID:     p.ID(),
			CustomerID:   p.CustomerID(),
			TrackingCode: p.TrackingCode(),
			Amount:       debt,
		})
	}

	return notices, uow.Commit(ctx)
}
