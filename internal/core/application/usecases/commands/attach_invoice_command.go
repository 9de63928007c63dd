package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var (
	ErrAttachInvoiceCommandIsNotConstructed = errors.New(
		"AttachInvoiceCommand must be created via NewAttachInvoiceCommand constructor",
	)
	ErrInvoiceDocRefIsRequired = errors.New("invoice document reference is required")
)

// AttachInvoiceCommand attaches a purchase invoice document to a parcel.
// An invoice is a consolidation prerequisite.
type AttachInvoiceCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	invoiceDocRef string

	guard guard.ConstructorGuard
}

// NewAttachInvoiceCommand creates a command to attach an invoice document.
func NewAttachInvoiceCommand(parcelID kernel.UUID, invoiceDocRef string) (AttachInvoiceCommand, error) {
	cmd := AttachInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setInvoiceDocRef(invoiceDocRef),
	); err != nil {
		return AttachInvoiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrAttachInvoiceCommandIsNotConstructed)
}

// ParcelID returns the parcel receiving the invoice.
func (c AttachInvoiceCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// InvoiceDocRef returns the invoice document reference.
func (c AttachInvoiceCommand) InvoiceDocRef() string {
	return c.invoiceDocRef
}

func (c *AttachInvoiceCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AttachInvoiceCommand) setInvoiceDocRef(ref string) error {
	if ref == "" {
		return ErrInvoiceDocRefIsRequired
	}

	c.invoiceDocRef = ref
	return nil
}
