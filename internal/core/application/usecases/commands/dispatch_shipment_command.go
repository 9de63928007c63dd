package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrDispatchShipmentCommandIsNotConstructed = errors.New(
	"DispatchShipmentCommand must be created via NewDispatchShipmentCommand constructor",
)

// DispatchShipmentCommand hands a paid shipment to its carrier.
// TrackingNumber is the carrier's master tracking number; it may be left
// empty for the house fleet, in which case one is generated at dispatch.
type DispatchShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewDispatchShipmentCommand creates a command to dispatch a shipment.
func NewDispatchShipmentCommand(shipmentID kernel.UUID, trackingNumber string) (DispatchShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return DispatchShipmentCommand{}, err
	}

	return DispatchShipmentCommand{
		shipmentID:     shipmentID,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDispatchShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to dispatch.
func (c DispatchShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TrackingNumber returns the carrier master tracking number, possibly empty.
func (c DispatchShipmentCommand) TrackingNumber() string {
	return c.trackingNumber
}
