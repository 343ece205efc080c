package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// UpdateDriverPresenceCommandHandler persists presence and position
// changes reported by drivers.
type UpdateDriverPresenceCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateDriverPresenceCommandHandler creates a handler for presence updates.
func NewUpdateDriverPresenceCommandHandler(uowFactory DriverUoWFactory,
	publisher ports.EventPublisher) UpdateDriverPresenceCommandHandler {
	return UpdateDriverPresenceCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle applies the presence change and publishes a driver_updated event
// once the transaction commits.
func (h UpdateDriverPresenceCommandHandler) Handle(ctx context.Context,
	command UpdateDriverPresenceCommand) error {
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

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = aggregate.SetOnline(command.Online()); err != nil {
		return err
	}
	if command.Location() != nil {
		if err = aggregate.MoveTo(*command.Location()); err != nil {
			return err
		}
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
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
