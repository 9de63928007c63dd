package commands

import (
	"context"

	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/core/ports"
)

// CreateRequestCommandHandler handles local service ordering.
// The road distance between origin and destination is resolved at creation
// time and frozen on the request; a resolver outage records zero miles,
// which simply waives the distance surcharge.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	distance   ports.DistanceService
}

// NewCreateRequestCommandHandler creates a handler for local service orders.
func NewCreateRequestCommandHandler(
	uowFactory RequestUoWFactory,
	distance ports.DistanceService,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		distance:   distance,
	}
}

// Handle processes the service order.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Distance failures are not fatal: the adapter reports 0 miles and
	// the customer is never overcharged for an unresolvable route.
	miles, err := h.distance.DistanceMiles(ctx, cmd.Origin(), cmd.Destination())
	if err != nil {
		miles = 0
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := localrequest.NewRequest(
		cmd.RequestID(), cmd.CustomerID(),
		cmd.ServiceType(),
		cmd.Origin(), cmd.Destination(),
		cmd.WeightTier(), cmd.ExactWeightLb(),
		cmd.VolumeTier(),
		miles,
	)
	if err != nil {
		return err
	}

	if err = uow.RequestRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
