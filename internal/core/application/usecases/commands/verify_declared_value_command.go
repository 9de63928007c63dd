package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrVerifyDeclaredValueCommandIsNotConstructed = errors.New(
	"VerifyDeclaredValueCommand must be created via NewVerifyDeclaredValueCommand constructor",
)

// VerifyDeclaredValueCommand marks a parcel's declared value as verified by
// staff against the attached invoice. Verification is one-way: once set the
// customer can no longer edit the declared value.
type VerifyDeclaredValueCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVerifyDeclaredValueCommand creates a command to verify a declared value.
func NewVerifyDeclaredValueCommand(parcelID kernel.UUID) (VerifyDeclaredValueCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return VerifyDeclaredValueCommand{}, err
	}

	return VerifyDeclaredValueCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeclaredValueCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeclaredValueCommandIsNotConstructed)
}

// ParcelID returns the parcel whose declared value is being verified.
func (c VerifyDeclaredValueCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
