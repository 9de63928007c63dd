package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrCompleteStorePickupCommandIsNotConstructed = errors.New(
	"CompleteStorePickupCommand must be created via NewCompleteStorePickupCommand constructor",
)

// CompleteStorePickupCommand settles a parcel held for self-pickup at the
// warehouse counter: outstanding storage fees are charged and the parcel is
// marked paid and handed over.
type CompleteStorePickupCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteStorePickupCommand creates a command to hand a parcel over at the counter.
func NewCompleteStorePickupCommand(parcelID kernel.UUID) (CompleteStorePickupCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return CompleteStorePickupCommand{}, err
	}

	return CompleteStorePickupCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStorePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStorePickupCommandIsNotConstructed)
}

// ParcelID returns the parcel being picked up.
func (c CompleteStorePickupCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
