package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrConsolidateParcelsCommandIsNotConstructed = errors.New(
		"ConsolidateParcelsCommand must be created via NewConsolidateParcelsCommand constructor",
	)
	ErrParcelSelectionIsRequired = errors.New("at least one parcel must be selected")
)

// ConsolidateParcelsCommand represents a customer's request to combine
// several warehouse parcels into one consolidated shipment.
//
// Example:
//
//	cmd, err := NewConsolidateParcelsCommand(kernel.NewUUID(), customerID, parcelIDs)
//	if err != nil {
//	    return fmt.Errorf("invalid consolidation request: %w", err)
//	}
//
//	handler := NewConsolidateParcelsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var validationErr *errs.ValidationError
//	    if errors.As(err, &validationErr) {
//	        // surface every violated rule to the customer at once
//	    }
//	    return err
//	}
type ConsolidateParcelsCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	customerID kernel.UUID
	parcelIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewConsolidateParcelsCommand creates a command to consolidate parcels.
// Selection size and parcel eligibility are enforced by the consolidation
// engine in the handler; the command only requires a non-empty selection.
func NewConsolidateParcelsCommand(
	shipmentID, customerID kernel.UUID,
	parcelIDs []kernel.UUID,
) (ConsolidateParcelsCommand, error) {
	cmd := ConsolidateParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCustomerID(customerID),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return ConsolidateParcelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConsolidateParcelsCommand) Validate() error {
	return c.guard.Validate(ErrConsolidateParcelsCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the shipment to create.
func (c ConsolidateParcelsCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CustomerID returns the owning customer's identifier.
func (c ConsolidateParcelsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ParcelIDs returns the selected parcel identifiers.
func (c ConsolidateParcelsCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

func (c *ConsolidateParcelsCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ConsolidateParcelsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *ConsolidateParcelsCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrParcelSelectionIsRequired
	}

	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.parcelIDs = parcelIDs
	return nil
}
