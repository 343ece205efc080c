package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests that a single pending order be matched to the
// nearest dispatchable driver. The operation is idempotent per order: if an
// assignment already exists the command is a no-op.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to match one order to a driver.
func NewAssignOrderCommand(orderID kernel.UUID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to match.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
