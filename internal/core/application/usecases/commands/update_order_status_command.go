package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand requests a delivery-progress transition for an
// order: picked_up, in_transit, delivered or cancelled. Assignment is not a
// valid target; matching goes through the assignment workflow.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to the
// given status. The target status itself must be valid; whether the
// transition is allowed is decided against the current state on Handle.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, next order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c UpdateOrderStatusCommand) Next() order.Status {
	return c.next
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
