package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// RegisterDriverCommandHandler persists new drivers and announces them to
// the dashboard stream.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ports.EventPublisher
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory,
	publisher ports.EventPublisher) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle creates the driver aggregate, persists it and publishes a
// driver_updated event once the transaction commits.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, command RegisterDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := driver.NewDriver(
		command.DriverID(),
		command.Name(),
		command.ChatID(),
		command.Phone(),
		command.Location(),
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

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.Event{
		Kind:    ports.EventDriverUpdated,
		Payload: newDriverEventPayload(aggregate),
	})

	return nil
}
