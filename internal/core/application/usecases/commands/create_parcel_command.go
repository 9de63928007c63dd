package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrCarrierTrackingCodeIsRequired = errors.New("carrier tracking code is required")
	ErrDeclaredValueIsInvalid        = errors.New("declared value must not be negative")
)

// CreateParcelCommand represents a customer's announcement of an inbound
// parcel. The parcel enters the system in pre-alerted status and waits for
// warehouse intake.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, customerID, "1Z999AA10123456784", 149.99)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create parcel: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID            kernel.UUID
	customerID          kernel.UUID
	carrierTrackingCode string
	declaredValue       float64

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to pre-alert an inbound parcel.
// Validates that both IDs are valid, the carrier tracking code is present,
// and the declared value is not negative.
func NewCreateParcelCommand(
	parcelID, customerID kernel.UUID,
	carrierTrackingCode string,
	declaredValue float64,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setCustomerID(customerID),
		cmd.setCarrierTrackingCode(carrierTrackingCode),
		cmd.setDeclaredValue(declaredValue),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CustomerID returns the owning customer's identifier.
func (c CreateParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CarrierTrackingCode returns the inbound carrier's tracking code.
func (c CreateParcelCommand) CarrierTrackingCode() string {
	return c.carrierTrackingCode
}

// DeclaredValue returns the customer-declared merchandise value.
func (c CreateParcelCommand) DeclaredValue() float64 {
	return c.declaredValue
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateParcelCommand) setCarrierTrackingCode(code string) error {
	if code == "" {
		return ErrCarrierTrackingCodeIsRequired
	}

	c.carrierTrackingCode = code
	return nil
}

func (c *CreateParcelCommand) setDeclaredValue(value float64) error {
	if value < 0 {
		return ErrDeclaredValueIsInvalid
	}

	c.declaredValue = value
	return nil
}
