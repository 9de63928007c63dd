package commands

import (
	"context"
	"fmt"

	"cargolink/internal/core/domain/services"
	"cargolink/internal/core/ports"
)

// ConfirmRequestDeliveryCommandHandler closes local service requests on
// delivery evidence and charges the fare. Evidence rules live in the
// aggregate: photo and signature are both required and pickup must have
// been confirmed first. The fare is computed from the frozen tier and
// distance inputs, captured with the payment gateway, and recorded on the
// request in the same transaction.
//
// The gateway call sits outside the database transaction. If the commit
// fails after a successful capture the handler reports a
// PaymentPendingReconciliationError carrying the gateway payment id.
type ConfirmRequestDeliveryCommandHandler struct {
	uowFactory  RequestUoWFactory
	gateway     ports.PaymentGateway
	feeSchedule services.FeeScheduleFunc
}

// NewConfirmRequestDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmRequestDeliveryCommandHandler(
	uowFactory RequestUoWFactory,
	gateway ports.PaymentGateway,
	feeSchedule services.FeeScheduleFunc,
) ConfirmRequestDeliveryCommandHandler {
	return ConfirmRequestDeliveryCommandHandler{
		uowFactory:  uowFactory,
		gateway:     gateway,
		feeSchedule: feeSchedule,
	}
}

// Handle processes the delivery confirmation and the fare capture.
func (h ConfirmRequestDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmRequestDeliveryCommand) error {
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

	requestRepo := uow.RequestRepository()
	aggregate, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmDelivery(cmd.PhotoRef(), cmd.SignatureRef()); err != nil {
		return err
	}

	quote := services.NewPricingCalculator().QuoteLocal(services.LocalQuoteInput{
		WeightTier:    aggregate.WeightTier(),
		ExactWeightLb: aggregate.ExactWeightLb(),
		VolumeTier:    aggregate.VolumeTier(),
		DistanceMiles: aggregate.DistanceMiles(),
	}, h.feeSchedule)

	receipt, err := h.gateway.Charge(ctx, ports.ChargeRequest{
		IdempotencyKey: "request-" + aggregate.ID().String(),
		Amount:         quote.Total,
		Currency:       "USD",
		CustomerRef:    aggregate.CustomerID().String(),
		Description:    fmt.Sprintf("%s request %s", aggregate.ServiceType(), aggregate.ID()),
	})
	if err != nil {
		return err
	}

	if err = aggregate.RecordPayment(quote.Total, receipt.PaymentID); err != nil {
		return h.reconciliation(receipt, err)
	}

	if err = requestRepo.Update(ctx, aggregate); err != nil {
		return h.reconciliation(receipt, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.reconciliation(receipt, err)
	}

	return nil
}

// reconciliation wraps failures that happen after the gateway captured
// funds. The original error stays reachable through Unwrap.
func (h ConfirmRequestDeliveryCommandHandler) reconciliation(receipt ports.ChargeReceipt, cause error) error {
	return &ports.PaymentPendingReconciliationError{
		PaymentID: receipt.PaymentID,
		Cause:     cause,
	}
}
