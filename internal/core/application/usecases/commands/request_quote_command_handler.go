package commands

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"cargolink/internal/core/domain/model/carrier"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

var ErrNoRatesAvailable = errors.New("no carrier rates available")

// RequestQuoteCommandHandler produces price quotes for measured shipments.
// Nothing is persisted: the payment flow recomputes the quote from the same
// canonical inputs, so a stale quote can never be charged.
type RequestQuoteCommandHandler struct {
	uowFactory    FreightUoWFactory
	rates         ports.RateService
	feeSchedule   services.FeeScheduleFunc
	storagePolicy parcel.StoragePolicy
	now           func() time.Time
}

// NewRequestQuoteCommandHandler creates a handler for quote requests.
func NewRequestQuoteCommandHandler(
	uowFactory FreightUoWFactory,
	rates ports.RateService,
	feeSchedule services.FeeScheduleFunc,
	storagePolicy parcel.StoragePolicy,
) RequestQuoteCommandHandler {
	return RequestQuoteCommandHandler{
		uowFactory:    uowFactory,
		rates:         rates,
		feeSchedule:   feeSchedule,
		storagePolicy: storagePolicy,
		now:           time.Now,
	}
}

// Handle processes the quote request.
// Every member parcel must be quotable: invoice attached, declared value
// verified, complete delivery address, and no outstanding storage debt. A
// rate service outage degrades to the fallback option instead of failing,
// and the degradation is surfaced as a quote notice.
func (h RequestQuoteCommandHandler) Handle(ctx context.Context, cmd RequestQuoteCommand) (services.Quote, error) {
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

	sh, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return services.Quote{}, err
	}
	if !sh.IsMeasured() {
		return services.Quote{}, errs.NewStateConflictError(
			"request quote", sh.Status().String(), "shipment has not been measured yet")
	}

	members, err := uow.ParcelRepository().GetAllByShipmentID(ctx, sh.ID())
	if err != nil {
		return services.Quote{}, err
	}

	now := h.now()
	declaredValues := make([]float64, 0, len(members))
	for _, member := range members {
		if err = member.EnsureQuotable(cmd.Destination(), now, h.storagePolicy); err != nil {
			return services.Quote{}, err
		}
		declaredValues = append(declaredValues, member.DeclaredValue())
	}

	option, degraded, err := h.pickRate(ctx, sh.FinalWeightLb(), sh.FinalDims(), cmd)
	if err != nil {
		return services.Quote{}, err
	}

	chosen, err := carrier.NewCarrier(option.CarrierCode, option.CarrierName, option.ServiceLevel, option.Internal)
	if err != nil {
		return services.Quote{}, err
	}

	quote := services.NewPricingCalculator().QuoteShipment(services.ShipmentQuoteInput{
		CarrierPrice:         option.Price,
		Carrier:              chosen,
		MemberDeclaredValues: declaredValues,
		PromoRequested:       cmd.PromoRequested(),
	}, h.feeSchedule)

	if degraded {
		quote.Notices = append(quote.Notices,
			"carrier rates are temporarily unavailable; quote uses the standard fallback rate")
	}

	return quote, nil
}

func (h RequestQuoteCommandHandler) pickRate(
	ctx context.Context,
	weightLb float64,
	dims parcel.Dimensions,
	cmd RequestQuoteCommand,
) (ports.RateOption, bool, error) {
	options, err := h.rates.GetRates(ctx, weightLb, dims, cmd.Destination())

	degraded := false
	if err != nil {
		var external *errs.ExternalServiceError
		if !errors.As(err, &external) || len(options) == 0 {
			return ports.RateOption{}, false, err
		}
		degraded = true
	}
	if len(options) == 0 {
		return ports.RateOption{}, false, ErrNoRatesAvailable
	}

	if cmd.CarrierCode() != "" {
		option, found := lo.Find(options, func(o ports.RateOption) bool {
			return o.CarrierCode == cmd.CarrierCode()
		})
		if !found {
			return ports.RateOption{}, false, errs.NewObjectNotFoundError("carrier", cmd.CarrierCode())
		}
		return option, degraded, nil
	}

	cheapest := lo.MinBy(options, func(a, b ports.RateOption) bool {
		return a.Price < b.Price
	})
	return cheapest, degraded, nil
}
