package commands

import (
	"errors"

	"cargolink/internal/pkg/guard"
)

var (
	ErrReceiveParcelCommandIsNotConstructed = errors.New(
		"ReceiveParcelCommand must be created via NewReceiveParcelCommand constructor",
	)
	ErrTrackingCodeIsRequired      = errors.New("tracking code is required")
	ErrWarehousePhotoRefIsRequired = errors.New("warehouse photo reference is required")
)

// ReceiveParcelCommand represents warehouse intake of an arriving parcel.
// The parcel is matched by its internal tracking code and moves to
// receiving status pending measurement.
type ReceiveParcelCommand struct { //nolint:recvcheck //using for validation
	trackingCode      string
	warehousePhotoRef string

	guard guard.ConstructorGuard
}

// NewReceiveParcelCommand creates a command to register warehouse intake.
// Requires the internal tracking code and the intake photo reference.
func NewReceiveParcelCommand(trackingCode, warehousePhotoRef string) (ReceiveParcelCommand, error) {
	cmd := ReceiveParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingCode(trackingCode),
		cmd.setWarehousePhotoRef(warehousePhotoRef),
	); err != nil {
		return ReceiveParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveParcelCommand) Validate() error {
	return c.guard.Validate(ErrReceiveParcelCommandIsNotConstructed)
}

// TrackingCode returns the internal tracking code scanned at intake.
func (c ReceiveParcelCommand) TrackingCode() string {
	return c.trackingCode
}

// WarehousePhotoRef returns the intake photo document reference.
func (c ReceiveParcelCommand) WarehousePhotoRef() string {
	return c.warehousePhotoRef
}

func (c *ReceiveParcelCommand) setTrackingCode(code string) error {
	if code == "" {
		return ErrTrackingCodeIsRequired
	}

	c.trackingCode = code
	return nil
}

func (c *ReceiveParcelCommand) setWarehousePhotoRef(ref string) error {
	if ref == "" {
		return ErrWarehousePhotoRefIsRequired
	}

	c.warehousePhotoRef = ref
	return nil
}
