package commands

import (
	"context"

	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"
)

// AttachInvoiceCommandHandler attaches purchase invoices to parcels.
// The document reference must resolve in the document store before it is
// accepted.
type AttachInvoiceCommandHandler struct {
	uowFactory ParcelUoWFactory
	documents  ports.DocumentStore
}

// NewAttachInvoiceCommandHandler creates a handler for invoice attachment.
func NewAttachInvoiceCommandHandler(
	uowFactory ParcelUoWFactory,
	documents ports.DocumentStore,
) AttachInvoiceCommandHandler {
	return AttachInvoiceCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

// Handle processes the invoice attachment command.
func (h AttachInvoiceCommandHandler) Handle(ctx context.Context, cmd AttachInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.documents.Exists(ctx, cmd.InvoiceDocRef())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidError("invoice document reference")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = aggregate.AttachInvoice(cmd.InvoiceDocRef()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
