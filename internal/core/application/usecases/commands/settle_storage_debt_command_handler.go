package commands

import (
	"context"
	"fmt"
	"time"

	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/ports"
)

// SettleStorageDebtCommandHandler charges outstanding storage fees and
// records the settlement on the parcel. A parcel with no debt is a no-op.
type SettleStorageDebtCommandHandler struct {
	uowFactory    ParcelUoWFactory
	gateway       ports.PaymentGateway
	storagePolicy parcel.StoragePolicy
	now           func() time.Time
}

// NewSettleStorageDebtCommandHandler creates a handler for storage debt settlement.
func NewSettleStorageDebtCommandHandler(
	uowFactory ParcelUoWFactory,
	gateway ports.PaymentGateway,
	storagePolicy parcel.StoragePolicy,
) SettleStorageDebtCommandHandler {
	return SettleStorageDebtCommandHandler{
		uowFactory:    uowFactory,
		gateway:       gateway,
		storagePolicy: storagePolicy,
		now:           time.Now,
	}
}

// Handle processes the settlement.
// The debt amount is computed from the intake timestamp and the storage
// policy at the moment of settlement, so partial settlements are not
// possible: the account is either clear or it is not.
func (h SettleStorageDebtCommandHandler) Handle(ctx context.Context, cmd SettleStorageDebtCommand) error {
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

	now := h.now()
	debt := aggregate.StorageDebt(now, h.storagePolicy)
	if debt == 0 {
		return uow.Commit(ctx)
	}

	receipt, err := h.gateway.Charge(ctx, ports.ChargeRequest{
		IdempotencyKey: fmt.Sprintf("storage-%s-%d", aggregate.ID().String(), now.Unix()),
		Amount:         debt,
		Currency:       "USD",
		CustomerRef:    aggregate.CustomerID().String(),
		Description:    fmt.Sprintf("storage fees for parcel %s", aggregate.TrackingCode()),
	})
	if err != nil {
		return err
	}

	aggregate.SettleStorageDebt(now)

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return &ports.PaymentPendingReconciliationError{PaymentID: receipt.PaymentID, Cause: err}
	}

	if err = uow.Commit(ctx); err != nil {
		return &ports.PaymentPendingReconciliationError{PaymentID: receipt.PaymentID, Cause: err}
	}

	return nil
}
