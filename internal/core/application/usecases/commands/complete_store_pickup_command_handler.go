package commands

import (
	"context"
	"fmt"
	"time"

	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// CompleteStorePickupCommandHandler settles a self-pickup at the warehouse
// counter. Any accrued storage fees are charged before handover; a parcel
// with no debt is handed over without a gateway call. The parcel ends in
// the paid state, which is terminal for the pickup track.
type CompleteStorePickupCommandHandler struct {
	uowFactory    ParcelUoWFactory
	gateway       ports.PaymentGateway
	storagePolicy parcel.StoragePolicy
	now           func() time.Time
}

// NewCompleteStorePickupCommandHandler creates a handler for counter handovers.
func NewCompleteStorePickupCommandHandler(
	uowFactory ParcelUoWFactory,
	gateway ports.PaymentGateway,
	storagePolicy parcel.StoragePolicy,
) CompleteStorePickupCommandHandler {
	return CompleteStorePickupCommandHandler{
		uowFactory:    uowFactory,
		gateway:       gateway,
		storagePolicy: storagePolicy,
		now:           time.Now,
	}
}

// Handle processes the handover.
// The parcel must be pending store pickup; the status transition rejects
// anything else before the gateway is touched.
func (h CompleteStorePickupCommandHandler) Handle(ctx context.Context, cmd CompleteStorePickupCommand) error {
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

	if aggregate.Status() != parcel.PendingStorePickup {
		return errs.NewStateConflictError(
			"complete store pickup", aggregate.Status().String(), "parcel is not held for store pickup")
	}

	now := h.now()
	debt := aggregate.StorageDebt(now, h.storagePolicy)

	var receipt ports.ChargeReceipt
	if debt > 0 {
		receipt, err = h.gateway.Charge(ctx, ports.ChargeRequest{
			IdempotencyKey: fmt.Sprintf("store-pickup-%s", aggregate.ID().String()),
			Amount:         debt,
			Currency:       "USD",
			CustomerRef:    aggregate.CustomerID().String(),
			Description:    fmt.Sprintf("storage fees at pickup for parcel %s", aggregate.TrackingCode()),
		})
		if err != nil {
			return err
		}
		aggregate.SettleStorageDebt(now)
	}

	if err = aggregate.MarkPaid(); err != nil {
		return h.reconciliation(receipt, err)
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return h.reconciliation(receipt, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.reconciliation(receipt, err)
	}

	return nil
}

// reconciliation wraps post-charge failures when funds were captured. With
// no debt there is no payment id and the cause passes through unwrapped.
func (h CompleteStorePickupCommandHandler) reconciliation(receipt ports.ChargeReceipt, cause error) error {
	if receipt.PaymentID == "" {
		return cause
	}
	return &ports.PaymentPendingReconciliationError{
		PaymentID: receipt.PaymentID,
		Cause:     cause,
	}
}
