package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
	ErrProofPhotoRefIsRequired = errors.New("proof-of-delivery photo reference is required")
)

// ConfirmDeliveryCommand closes a shipment with proof-of-delivery evidence.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	proofPhotoRef string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm shipment delivery.
// A proof-of-delivery photo is mandatory; there is no way to close a
// shipment without evidence.
func NewConfirmDeliveryCommand(shipmentID kernel.UUID, proofPhotoRef string) (ConfirmDeliveryCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	if proofPhotoRef == "" {
		return ConfirmDeliveryCommand{}, ErrProofPhotoRefIsRequired
	}

	return ConfirmDeliveryCommand{
		shipmentID:    shipmentID,
		proofPhotoRef: proofPhotoRef,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// ShipmentID returns the delivered shipment.
func (c ConfirmDeliveryCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ProofPhotoRef returns the proof-of-delivery photo reference.
func (c ConfirmDeliveryCommand) ProofPhotoRef() string {
	return c.proofPhotoRef
}
