package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrMarkOutForDeliveryCommandIsNotConstructed = errors.New(
	"MarkOutForDeliveryCommand must be created via NewMarkOutForDeliveryCommand constructor",
)

// MarkOutForDeliveryCommand records that a driver has loaded a parcel for
// final delivery.
type MarkOutForDeliveryCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOutForDeliveryCommand creates a command to mark a parcel out for delivery.
func NewMarkOutForDeliveryCommand(parcelID kernel.UUID) (MarkOutForDeliveryCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return MarkOutForDeliveryCommand{}, err
	}

	return MarkOutForDeliveryCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOutForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrMarkOutForDeliveryCommandIsNotConstructed)
}

// ParcelID returns the parcel out for delivery.
func (c MarkOutForDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
