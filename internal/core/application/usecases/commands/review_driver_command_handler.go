package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

// ReviewDriverCommandHandler applies onboarding decisions and tells the
// driver about the outcome over the notification channel.
type ReviewDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.DriverReviewNotifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReviewDriverCommandHandler creates a handler for driver review.
func NewReviewDriverCommandHandler(uowFactory DriverUoWFactory,
	notifier ports.DriverReviewNotifier, publisher ports.EventPublisher,
	logger *slog.Logger) ReviewDriverCommandHandler {
	return ReviewDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger.With("component", "review_driver"),
	}
}

// Handle applies the review decision. Reviewing a driver that is not
// pending fails; decisions are final. The outcome notification is best
// effort and never reverts the decision.
func (h ReviewDriverCommandHandler) Handle(ctx context.Context, command ReviewDriverCommand) error {
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

	if command.Approved() {
		err = aggregate.Approve()
	} else {
		err = aggregate.Reject()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyReviewOutcome(ctx, aggregate, command.Approved()); err != nil {
		h.logger.Warn("review outcome notification failed",
			"driverId", aggregate.ID().String(),
			"approved", command.Approved(),
			"error", err)
	}

	h.publisher.Publish(ports.Event{
		Kind:    ports.EventDriverUpdated,
		Payload: newDriverEventPayload(aggregate),
	})

	return nil
}
