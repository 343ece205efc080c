package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// UpdateOrderStatusCommandHandler is the single mutation path for delivery
// progress. It applies the status machine, releases the driver when the
// order reaches a terminal state and announces both changes.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory,
	publisher ports.EventPublisher) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle applies the requested transition. Invalid transitions are rejected
// by the order aggregate and surface as validation errors; nothing is
// persisted in that case. Reaching delivered or cancelled frees the
// assigned driver in the same transaction.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(command.Next()); err != nil {
		return err
	}

	var freedDriver *driver.Driver
	if aggregate.Status().IsTerminal() && aggregate.DriverID() != nil {
		freedDriver, err = driverRepo.Get(ctx, *aggregate.DriverID())
		if err != nil {
			return err
		}
		if err = freedDriver.MarkAvailable(); err != nil {
			return err
		}
		if err = driverRepo.Update(ctx, freedDriver); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Kind:    ports.EventOrderUpdated,
		Payload: newOrderEventPayload(aggregate),
	})
	if freedDriver != nil {
		h.publisher.Publish(ports.Event{
			Kind:    ports.EventDriverUpdated,
			Payload: newDriverEventPayload(freedDriver),
		})
	}

	return nil
}
