package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrPayShipmentCommandIsNotConstructed = errors.New(
		"PayShipmentCommand must be created via NewPayShipmentCommand constructor",
	)
	ErrCarrierCodeIsRequired = errors.New("carrier code is required")
)

// PayShipmentCommand captures payment for a measured shipment with the
// chosen carrier option. The charge amount is always recomputed on the
// server from canonical inputs; client-supplied totals are never trusted.
type PayShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	destination    kernel.Address
	carrierCode    string
	promoRequested bool

	guard guard.ConstructorGuard
}

// NewPayShipmentCommand creates a command to pay for a shipment.
func NewPayShipmentCommand(
	shipmentID kernel.UUID,
	destination kernel.Address,
	carrierCode string,
	promoRequested bool,
) (PayShipmentCommand, error) {
	if err := errors.Join(
		shipmentID.Validate(),
		destination.Validate(),
	); err != nil {
		return PayShipmentCommand{}, err
	}
	if carrierCode == "" {
		return PayShipmentCommand{}, ErrCarrierCodeIsRequired
	}

	return PayShipmentCommand{
		shipmentID:     shipmentID,
		destination:    destination,
		carrierCode:    carrierCode,
		promoRequested: promoRequested,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayShipmentCommand) Validate() error {
	return c.guard.Validate(ErrPayShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment being paid for.
func (c PayShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Destination returns the delivery address used for rate lookup.
func (c PayShipmentCommand) Destination() kernel.Address {
	return c.destination
}

// CarrierCode returns the chosen carrier option.
func (c PayShipmentCommand) CarrierCode() string {
	return c.carrierCode
}

// PromoRequested reports whether the customer asked for the promotional credit.
func (c PayShipmentCommand) PromoRequested() bool {
	return c.promoRequested
}
