package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrConfirmPickupCommandIsNotConstructed = errors.New(
		"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
	)
	ErrPickupPhotoRefIsRequired = errors.New("pickup photo reference is required")
)

// ConfirmPickupCommand records a driver's pickup confirmation with photo
// evidence.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	photoRef  string

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command to confirm a pickup.
func NewConfirmPickupCommand(requestID kernel.UUID, photoRef string) (ConfirmPickupCommand, error) {
	if err := requestID.Validate(); err != nil {
		return ConfirmPickupCommand{}, err
	}
	if photoRef == "" {
		return ConfirmPickupCommand{}, ErrPickupPhotoRefIsRequired
	}

	return ConfirmPickupCommand{
		requestID: requestID,
		photoRef:  photoRef,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// RequestID returns the request being picked up.
func (c ConfirmPickupCommand) RequestID() kernel.UUID {
	return c.requestID
}

// PhotoRef returns the pickup photo reference.
func (c ConfirmPickupCommand) PhotoRef() string {
	return c.photoRef
}
