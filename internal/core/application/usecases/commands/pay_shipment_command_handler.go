package commands

import (
	"context"
	"fmt"
	"time"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// PayShipmentCommandHandler orchestrates shipment payment.
// Recomputes the price server-side, captures the charge with the payment
// gateway, and freezes the charge breakdown on the shipment. The shipment
// and every member parcel move to paid in one transaction.
//
// The gateway call sits outside the database transaction. If the commit
// fails after a successful capture the handler reports a
// PaymentPendingReconciliationError carrying the gateway payment id so the
// charge is never repeated blindly.
type PayShipmentCommandHandler struct {
	uowFactory    FreightUoWFactory
	rates         ports.RateService
	gateway       ports.PaymentGateway
	feeSchedule   services.FeeScheduleFunc
	storagePolicy parcel.StoragePolicy
	now           func() time.Time
}

// NewPayShipmentCommandHandler creates a handler for shipment payment.
func NewPayShipmentCommandHandler(
	uowFactory FreightUoWFactory,
	rates ports.RateService,
	gateway ports.PaymentGateway,
	feeSchedule services.FeeScheduleFunc,
	storagePolicy parcel.StoragePolicy,
) PayShipmentCommandHandler {
	return PayShipmentCommandHandler{
		uowFactory:    uowFactory,
		rates:         rates,
		gateway:       gateway,
		feeSchedule:   feeSchedule,
		storagePolicy: storagePolicy,
		now:           time.Now,
	}
}

// Handle processes the payment command.
// Outstanding storage debt on any member parcel blocks payment with a
// BlockedAccountError; the debt must be settled first.
func (h PayShipmentCommandHandler) Handle(ctx context.Context, cmd PayShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	sh, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if !sh.IsMeasured() {
		return errs.NewStateConflictError(
			"pay shipment", sh.Status().String(), "shipment has not been measured yet")
	}

	parcelRepo := uow.ParcelRepository()
	members, err := parcelRepo.GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return err
	}

	now := h.now()
	declaredValues := make([]float64, 0, len(members))
	for _, member := range members {
		if err = member.EnsureQuotable(cmd.Destination(), now, h.storagePolicy); err != nil {
			return err
		}
		declaredValues = append(declaredValues, member.DeclaredValue())
	}

	options, err := h.rates.GetRates(ctx, sh.FinalWeightLb(), sh.FinalDims(), cmd.Destination())
	if err != nil && len(options) == 0 {
		return err
	}

	var option *ports.RateOption
	for i := range options {
		if options[i].CarrierCode == cmd.CarrierCode() {
			option = &options[i]
			break
		}
	}
	if option == nil {
		return errs.NewObjectNotFoundError("carrier", cmd.CarrierCode())
	}

	chosen, err := carrier.NewCarrier(option.CarrierCode, option.CarrierName, option.ServiceLevel, option.Internal)
	if err != nil {
		return err
	}
	if err = sh.SelectCarrier(chosen); err != nil {
		return err
	}

	quote := services.NewPricingCalculator().QuoteShipment(services.ShipmentQuoteInput{
		CarrierPrice:         option.Price,
		Carrier:              chosen,
		MemberDeclaredValues: declaredValues,
		PromoRequested:       cmd.PromoRequested(),
	}, h.feeSchedule)

	receipt, err := h.gateway.Charge(ctx, ports.ChargeRequest{
		IdempotencyKey: "shipment-" + sh.ID().String(),
		Amount:         quote.Total,
		Currency:       "USD",
		CustomerRef:    sh.CustomerID().String(),
		Description:    fmt.Sprintf("freight shipment %s", sh.Code()),
	})
	if err != nil {
		return err
	}

	charges := shipment.Charges{
		Subtotal:      quote.BaseFare,
		HandlingFee:   quote.HandlingFee,
		Insurance:     quote.Insurance,
		ProcessingFee: quote.ProcessingFee,
		Discount:      quote.Discount,
		Total:         quote.Total,
	}
	if err = sh.MarkPaid(charges, receipt.PaymentID); err != nil {
		return h.reconciliation(receipt, err)
	}

	for _, member := range members {
		if err = member.MarkPaid(); err != nil {
			return h.reconciliation(receipt, err)
		}
		if err = parcelRepo.Update(ctx, member); err != nil {
			return h.reconciliation(receipt, err)
		}
	}

	if err = shipmentRepo.Update(ctx, sh); err != nil {
		return h.reconciliation(receipt, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.reconciliation(receipt, err)
	}

	return nil
}

// reconciliation wraps failures that happen after the gateway captured
// funds. The original error stays reachable through Unwrap.
func (h PayShipmentCommandHandler) reconciliation(receipt ports.ChargeReceipt, cause error) error {
	return &ports.PaymentPendingReconciliationError{
		PaymentID: receipt.PaymentID,
		Cause:     cause,
	}
}
