package commands

import (
	"context"

	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/pkg/errs"
)

// QuoteLocalRequestCommandHandler prices a local logistics order. Nothing is
// persisted: the completion flow recomputes the fare from the same frozen
// inputs, so a stale quote can never be charged.
type QuoteLocalRequestCommandHandler struct {
	uowFactory  RequestUoWFactory
	feeSchedule services.FeeScheduleFunc
}

// NewQuoteLocalRequestCommandHandler creates a handler for local order quotes.
func NewQuoteLocalRequestCommandHandler(
	uowFactory RequestUoWFactory,
	feeSchedule services.FeeScheduleFunc,
) QuoteLocalRequestCommandHandler {
	return QuoteLocalRequestCommandHandler{
		uowFactory:  uowFactory,
		feeSchedule: feeSchedule,
	}
}

// Handle processes the quote request. Closed orders cannot be quoted.
func (h QuoteLocalRequestCommandHandler) Handle(ctx context.Context, cmd QuoteLocalRequestCommand) (services.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return services.Quote{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Quote{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return services.Quote{}, err
	}

	if aggregate.Status() == localrequest.Canceled {
		return services.Quote{}, errs.NewStateConflictError(
			"quote local request", aggregate.Status().String(), "request is canceled")
	}

	quote := services.NewPricingCalculator().QuoteLocal(services.LocalQuoteInput{
		WeightTier:     aggregate.WeightTier(),
		ExactWeightLb:  aggregate.ExactWeightLb(),
		VolumeTier:     aggregate.VolumeTier(),
		DistanceMiles:  aggregate.DistanceMiles(),
		PromoRequested: cmd.PromoRequested(),
	}, h.feeSchedule)

	return quote, nil
}
