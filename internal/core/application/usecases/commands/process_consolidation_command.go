package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/guard"
)

var ErrProcessConsolidationCommandIsNotConstructed = errors.New(
	"ProcessConsolidationCommand must be created via NewProcessConsolidationCommand constructor",
)

// ProcessConsolidationCommand records the final repacked weight and
// dimensions of a consolidated shipment, making it payable. Member parcels
// move to consolidation-in-progress as staff repack them.
type ProcessConsolidationCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	weightLb   float64
	dims       parcel.Dimensions

	guard guard.ConstructorGuard
}

// NewProcessConsolidationCommand creates a command to record the repacked
// shipment measurement. The combined weight cap is enforced by the shipment
// aggregate.
func NewProcessConsolidationCommand(
	shipmentID kernel.UUID,
	weightLb float64,
	dims parcel.Dimensions,
) (ProcessConsolidationCommand, error) {
	cmd := ProcessConsolidationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWeightLb(weightLb),
		cmd.setDims(dims),
	); err != nil {
		return ProcessConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrProcessConsolidationCommandIsNotConstructed)
}

// ShipmentID returns the shipment being processed.
func (c ProcessConsolidationCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// WeightLb returns the final repacked weight in pounds.
func (c ProcessConsolidationCommand) WeightLb() float64 {
	return c.weightLb
}

// Dims returns the final repacked dimensions in inches.
func (c ProcessConsolidationCommand) Dims() parcel.Dimensions {
	return c.dims
}

func (c *ProcessConsolidationCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ProcessConsolidationCommand) setWeightLb(weightLb float64) error {
	if weightLb <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightLb = weightLb
	return nil
}

func (c *ProcessConsolidationCommand) setDims(dims parcel.Dimensions) error {
	if dims.LengthIn <= 0 || dims.WidthIn <= 0 || dims.HeightIn <= 0 {
		return ErrDimensionsAreInvalid
	}

	c.dims = dims
	return nil
}
