package commands

import (
	"errors"

	"nexus/internal/pkg/guard"
)

var ErrResetOperationsCommandIsNotConstructed = errors.New(
	"ResetOperationsCommand must be created via NewResetOperationsCommand constructor",
)

// ResetOperationsCommand wipes the operational state back to a clean slate:
// every shipment returns to pending with its driver binding cleared, and every
// driver returns to idle. Inventory is untouched. Intended for demos and
// drills, not the regular flow.
type ResetOperationsCommand struct {
	guard guard.ConstructorGuard
}

// NewResetOperationsCommand creates a command to reset the operational state.
func NewResetOperationsCommand() ResetOperationsCommand {
	return ResetOperationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrResetOperationsCommandIsNotConstructed if validation fails.
func (c *ResetOperationsCommand) Validate() error {
	return c.guard.Validate(
		ErrResetOperationsCommandIsNotConstructed,
	)
}
