package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand cancels a local service request. Only requests that
// have not been picked up yet can be canceled.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to cancel a request.
func NewCancelRequestCommand(requestID kernel.UUID) (CancelRequestCommand, error) {
	if err := requestID.Validate(); err != nil {
		return CancelRequestCommand{}, err
	}

	return CancelRequestCommand{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// RequestID returns the request to cancel.
func (c CancelRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}
