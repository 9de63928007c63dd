package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrRequestQuoteCommandIsNotConstructed = errors.New(
	"RequestQuoteCommand must be created via NewRequestQuoteCommand constructor",
)

// RequestQuoteCommand asks for a price quote on a measured shipment.
// CarrierCode selects a specific rate option; when empty the cheapest
// option is used. The resulting quote is ephemeral and never persisted.
type RequestQuoteCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	destination    kernel.Address
	carrierCode    string
	promoRequested bool

	guard guard.ConstructorGuard
}

// NewRequestQuoteCommand creates a command to quote a shipment.
func NewRequestQuoteCommand(
	shipmentID kernel.UUID,
	destination kernel.Address,
	carrierCode string,
	promoRequested bool,
) (RequestQuoteCommand, error) {
	if err := errors.Join(
		shipmentID.Validate(),
		destination.Validate(),
	); err != nil {
		return RequestQuoteCommand{}, err
	}

	return RequestQuoteCommand{
		shipmentID:     shipmentID,
		destination:    destination,
		carrierCode:    carrierCode,
		promoRequested: promoRequested,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRequestQuoteCommandIsNotConstructed)
}

// ShipmentID returns the shipment to quote.
func (c RequestQuoteCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Destination returns the delivery address used for rate lookup.
func (c RequestQuoteCommand) Destination() kernel.Address {
	return c.destination
}

// CarrierCode returns the requested carrier, empty for cheapest.
func (c RequestQuoteCommand) CarrierCode() string {
	return c.carrierCode
}

// PromoRequested reports whether the customer asked for the promotional credit.
func (c RequestQuoteCommand) PromoRequested() bool {
	return c.promoRequested
}
