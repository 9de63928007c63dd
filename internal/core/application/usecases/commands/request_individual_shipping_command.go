package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrRequestIndividualShippingCommandIsNotConstructed = errors.New(
	"RequestIndividualShippingCommand must be created via NewRequestIndividualShippingCommand constructor",
)

// RequestIndividualShippingCommand moves a warehouse parcel onto the
// individual shipping track instead of consolidation. A single-member
// shipment is created under the given identifier so the parcel enters the
// same quote-and-pay pipeline as consolidated freight.
type RequestIndividualShippingCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	parcelID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestIndividualShippingCommand creates a command to ship a parcel on its own.
func NewRequestIndividualShippingCommand(shipmentID, parcelID kernel.UUID) (RequestIndividualShippingCommand, error) {
	if err := errors.Join(shipmentID.Validate(), parcelID.Validate()); err != nil {
		return RequestIndividualShippingCommand{}, err
	}

	return RequestIndividualShippingCommand{
		shipmentID: shipmentID,
		parcelID:   parcelID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestIndividualShippingCommand) Validate() error {
	return c.guard.Validate(ErrRequestIndividualShippingCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the shipment to create.
func (c RequestIndividualShippingCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ParcelID returns the parcel to ship individually.
func (c RequestIndividualShippingCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
