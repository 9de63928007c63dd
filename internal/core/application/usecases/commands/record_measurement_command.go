package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrRecordMeasurementCommandIsNotConstructed = errors.New(
		"RecordMeasurementCommand must be created via NewRecordMeasurementCommand constructor",
	)
	ErrWeightIsInvalid      = errors.New("weight must be greater than 0")
	ErrDimensionsAreInvalid = errors.New("all dimensions must be greater than 0")
)

// RecordMeasurementCommand represents the staff measurement step that makes
// a received parcel available in the warehouse.
type RecordMeasurementCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	weightLb float64
	dims     parcel.Dimensions

	guard guard.ConstructorGuard
}

// NewRecordMeasurementCommand creates a command to record scale weight and
// measured dimensions for a parcel in receiving status.
func NewRecordMeasurementCommand(
	parcelID kernel.UUID,
	weightLb float64,
	dims parcel.Dimensions,
) (RecordMeasurementCommand, error) {
	cmd := RecordMeasurementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setWeightLb(weightLb),
		cmd.setDims(dims),
	); err != nil {
		return RecordMeasurementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordMeasurementCommand) Validate() error {
	return c.guard.Validate(ErrRecordMeasurementCommandIsNotConstructed)
}

// ParcelID returns the parcel being measured.
func (c RecordMeasurementCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// WeightLb returns the scale weight in pounds.
func (c RecordMeasurementCommand) WeightLb() float64 {
	return c.weightLb
}

// Dims returns the measured dimensions in inches.
func (c RecordMeasurementCommand) Dims() parcel.Dimensions {
	return c.dims
}

func (c *RecordMeasurementCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RecordMeasurementCommand) setWeightLb(weightLb float64) error {
	if weightLb <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightLb = weightLb
	return nil
}

func (c *RecordMeasurementCommand) setDims(dims parcel.Dimensions) error {
	if dims.LengthIn <= 0 || dims.WidthIn <= 0 || dims.HeightIn <= 0 {
		return ErrDimensionsAreInvalid
	}

	c.dims = dims
	return nil
}
