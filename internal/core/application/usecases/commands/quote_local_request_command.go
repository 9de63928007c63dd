package commands

import (
	"errors"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/guard"
)

var ErrQuoteLocalRequestCommandIsNotConstructed = errors.New(
	"QuoteLocalRequestCommand must be created via NewQuoteLocalRequestCommand constructor",
)

// QuoteLocalRequestCommand prices a local logistics order from its frozen
// tier and distance inputs. The quote is informational; the same inputs are
// re-priced when the order completes and is charged.
type QuoteLocalRequestCommand struct { //nolint:recvcheck //using for validation
	requestID      kernel.UUID
	promoRequested bool

	guard guard.ConstructorGuard
}

// NewQuoteLocalRequestCommand creates a command to quote a local order.
func NewQuoteLocalRequestCommand(requestID kernel.UUID, promoRequested bool) (QuoteLocalRequestCommand, error) {
	if err := requestID.Validate(); err != nil {
		return QuoteLocalRequestCommand{}, err
	}

	return QuoteLocalRequestCommand{
		requestID:      requestID,
		promoRequested: promoRequested,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c QuoteLocalRequestCommand) Validate() error {
	return c.guard.Validate(ErrQuoteLocalRequestCommandIsNotConstructed)
}

// RequestID returns the order to quote.
func (c QuoteLocalRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// PromoRequested reports whether the promotional credit should be attempted.
func (c QuoteLocalRequestCommand) PromoRequested() bool {
	return c.promoRequested
}
