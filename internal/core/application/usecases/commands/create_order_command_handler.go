package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler persists new orders and announces them to the
// dashboard stream.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory,
	publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle creates the order aggregate, persists it and publishes a new_order
// event once the transaction commits.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		command.OrderID(),
		command.OrderNumber(),
		command.RestaurantName(),
		command.PickupLocation(),
		command.DeliveryAddress(),
		command.DeliveryCoords(),
		command.Amount(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Kind:    ports.EventNewOrder,
		Payload: newOrderEventPayload(aggregate),
	})

	return nil
}
