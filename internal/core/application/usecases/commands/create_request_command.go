package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand represents a customer's order for a local logistics
// service: a warehouse pickup, a local delivery, or an export handoff.
// The customer declares weight and volume tiers; the heavy tier requires
// the exact weight for per-pound pricing.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID     kernel.UUID
	customerID    kernel.UUID
	serviceType   localrequest.ServiceType
	origin        kernel.Address
	destination   kernel.Address
	weightTier    localrequest.WeightTier
	exactWeightLb float64
	volumeTier    localrequest.VolumeTier

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to order a local service.
// Tier validity and the heavy-tier exact weight requirement are enforced
// by the request aggregate in the handler.
func NewCreateRequestCommand(
	requestID, customerID kernel.UUID,
	serviceType localrequest.ServiceType,
	origin, destination kernel.Address,
	weightTier localrequest.WeightTier,
	exactWeightLb float64,
	volumeTier localrequest.VolumeTier,
) (CreateRequestCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		customerID.Validate(),
		serviceType.Validate(),
		origin.Validate(),
		destination.Validate(),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return CreateRequestCommand{
		requestID:     requestID,
		customerID:    customerID,
		serviceType:   serviceType,
		origin:        origin,
		destination:   destination,
		weightTier:    weightTier,
		exactWeightLb: exactWeightLb,
		volumeTier:    volumeTier,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateRequestCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ServiceType returns the requested local service.
func (c CreateRequestCommand) ServiceType() localrequest.ServiceType {
	return c.serviceType
}

// Origin returns the pickup address.
func (c CreateRequestCommand) Origin() kernel.Address {
	return c.origin
}

// Destination returns the drop-off address.
func (c CreateRequestCommand) Destination() kernel.Address {
	return c.destination
}

// WeightTier returns the declared weight tier.
func (c CreateRequestCommand) WeightTier() localrequest.WeightTier {
	return c.weightTier
}

// ExactWeightLb returns the exact weight, required for the heavy tier.
func (c CreateRequestCommand) ExactWeightLb() float64 {
	return c.exactWeightLb
}

// VolumeTier returns the declared load volume tier.
func (c CreateRequestCommand) VolumeTier() localrequest.VolumeTier {
	return c.volumeTier
}
