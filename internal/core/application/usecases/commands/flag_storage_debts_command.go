package commands

import (
	"errors"

	"cargolink/internal/pkg/guard"
)

var ErrFlagStorageDebtsCommandIsNotConstructed = errors.New(
	"FlagStorageDebtsCommand must be created via NewFlagStorageDebtsCommand constructor",
)

// FlagStorageDebtsCommand triggers a sweep over every parcel held in the
// warehouse and reports the ones carrying outstanding storage debt. The
// sweep is read-only; debt itself accrues from the intake timestamp and is
// settled through SettleStorageDebtCommand.
//
// Example:
//
//	cmd := NewFlagStorageDebtsCommand()
//	handler := NewFlagStorageDebtsCommandHandler(uowFactory, policy)
//	notices, err := handler.Handle(ctx, cmd)
//	for _, n := range notices {
//	    log.Printf("parcel %s owes %.2f", n.TrackingCode, n.Amount)
//	}
type FlagStorageDebtsCommand struct {
	guard guard.ConstructorGuard
}

// NewFlagStorageDebtsCommand creates a new command to trigger the debt sweep.
func NewFlagStorageDebtsCommand() FlagStorageDebtsCommand {
	return FlagStorageDebtsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *FlagStorageDebtsCommand) Validate() error {
	return c.guard.Validate(
		ErrFlagStorageDebtsCommandIsNotConstructed,
	)
}
