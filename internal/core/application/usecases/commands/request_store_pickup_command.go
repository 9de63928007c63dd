package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrRequestStorePickupCommandIsNotConstructed = errors.New(
	"RequestStorePickupCommand must be created via NewRequestStorePickupCommand constructor",
)

// RequestStorePickupCommand moves a warehouse parcel onto the self-pickup
// track; the customer collects it at the warehouse counter.
type RequestStorePickupCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestStorePickupCommand creates a command to hold a parcel for pickup.
func NewRequestStorePickupCommand(parcelID kernel.UUID) (RequestStorePickupCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return RequestStorePickupCommand{}, err
	}

	return RequestStorePickupCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestStorePickupCommand) Validate() error {
	return c.guard.Validate(ErrRequestStorePickupCommandIsNotConstructed)
}

// ParcelID returns the parcel to hold for pickup.
func (c RequestStorePickupCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
