package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrProcessPendingOrdersCommandIsNotConstructed = errors.New(
	"ProcessPendingOrdersCommand must be created via NewProcessPendingOrdersCommand constructor",
)

// ProcessPendingOrdersCommand triggers one dispatch cycle over the whole
// pending backlog. Parameterless; the cycle discovers the backlog itself.
type ProcessPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessPendingOrdersCommand creates a command to run a dispatch cycle.
func NewProcessPendingOrdersCommand() ProcessPendingOrdersCommand {
	return ProcessPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrProcessPendingOrdersCommandIsNotConstructed)
}
