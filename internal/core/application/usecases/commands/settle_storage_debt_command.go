package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrSettleStorageDebtCommandIsNotConstructed = errors.New(
	"SettleStorageDebtCommand must be created via NewSettleStorageDebtCommand constructor",
)

// SettleStorageDebtCommand charges and clears a parcel's accumulated
// storage debt, unblocking quoting and payment for the owning account.
type SettleStorageDebtCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSettleStorageDebtCommand creates a command to settle storage debt.
func NewSettleStorageDebtCommand(parcelID kernel.UUID) (SettleStorageDebtCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return SettleStorageDebtCommand{}, err
	}

	return SettleStorageDebtCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleStorageDebtCommand) Validate() error {
	return c.guard.Validate(ErrSettleStorageDebtCommandIsNotConstructed)
}

// ParcelID returns the parcel whose debt is settled.
func (c SettleStorageDebtCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
