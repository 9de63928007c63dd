package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrMarkInTransitCommandIsNotConstructed = errors.New(
	"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
)

// MarkInTransitCommand records that a dispatched shipment is moving with
// its carrier.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkInTransitCommand creates a command to mark a shipment in transit.
func NewMarkInTransitCommand(shipmentID kernel.UUID) (MarkInTransitCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return MarkInTransitCommand{}, err
	}

	return MarkInTransitCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

// ShipmentID returns the shipment in transit.
func (c MarkInTransitCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
