package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrConfirmRequestDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmRequestDeliveryCommand must be created via NewConfirmRequestDeliveryCommand constructor",
)

// ConfirmRequestDeliveryCommand closes a local service request with
// delivery evidence. Both a photo and a recipient signature are required;
// the aggregate additionally rejects the confirmation when no pickup was
// confirmed first.
type ConfirmRequestDeliveryCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	photoRef     string
	signatureRef string

	guard guard.ConstructorGuard
}

// NewConfirmRequestDeliveryCommand creates a command to confirm a local delivery.
// Evidence completeness is validated by the aggregate so that both missing
// pieces are reported together.
func NewConfirmRequestDeliveryCommand(
	requestID kernel.UUID,
	photoRef, signatureRef string,
) (ConfirmRequestDeliveryCommand, error) {
	if err := requestID.Validate(); err != nil {
		return ConfirmRequestDeliveryCommand{}, err
	}

	return ConfirmRequestDeliveryCommand{
		requestID:    requestID,
		photoRef:     photoRef,
		signatureRef: signatureRef,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmRequestDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRequestDeliveryCommandIsNotConstructed)
}

// RequestID returns the request being closed.
func (c ConfirmRequestDeliveryCommand) RequestID() kernel.UUID {
	return c.requestID
}

// PhotoRef returns the delivery photo reference.
func (c ConfirmRequestDeliveryCommand) PhotoRef() string {
	return c.photoRef
}

// SignatureRef returns the recipient signature reference.
func (c ConfirmRequestDeliveryCommand) SignatureRef() string {
	return c.signatureRef
}
