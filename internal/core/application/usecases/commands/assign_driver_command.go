package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand assigns or reassigns a driver to a local service
// request.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver.
func NewAssignDriverCommand(requestID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		requestID: requestID,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// RequestID returns the request being assigned.
func (c AssignDriverCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DriverID returns the driver taking the request.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}
