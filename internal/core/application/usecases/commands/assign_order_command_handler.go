package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler runs the assignment workflow for one order:
// idempotency check, candidate loading, nearest-driver selection, state
// changes on both aggregates, the assignment record, best-effort driver
// notification and dashboard events.
//
// Handle reports (false, nil) for the expected non-match outcomes: the
// order already has an assignment, it is no longer pending, or no driver
// qualifies. Only infrastructure failures surface as errors.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.DriverMatcher
	notifier   ports.AssignmentNotifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for the assignment workflow.
func NewAssignOrderCommandHandler(uowFactory UoWFactory, matcher services.DriverMatcher,
	notifier ports.AssignmentNotifier, publisher ports.EventPublisher,
	logger *slog.Logger) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger.With("component", "assign_order"),
	}
}

// Handle processes the assignment command and reports whether a driver was
// assigned. The notification attempt happens inside the transaction so its
// outcome lands in the same commit as the match; a failed send is recorded
// on the assignment and never reverts the match.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()
	assignmentRepo := uow.AssignmentRepository()

	// Idempotency: an order is matched at most once, ever.
	_, err := assignmentRepo.GetByOrderID(ctx, command.OrderID())
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	pendingOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return false, err
	}

	// The order may have progressed or been cancelled since it was
	// enumerated. Not an error: the backlog just moved on.
	if pendingOrder.Status() != order.Pending {
		return false, nil
	}

	candidates, err := driverRepo.GetAllDispatchable(ctx)
	if err != nil {
		return false, err
	}

	match, err := h.matcher.SelectDriver(pendingOrder, candidates)
	if errors.Is(err, services.ErrNoDispatchableDriver) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = pendingOrder.Assign(match.Driver.ID()); err != nil {
		return false, err
	}
	if err = match.Driver.MarkBusy(); err != nil {
		return false, err
	}

	record, err := assignment.NewAssignment(
		kernel.NewUUID(), pendingOrder.ID(), match.Driver.ID(), match.DistanceKm)
	if err != nil {
		return false, err
	}

	notifyErr := h.notifier.NotifyAssignment(ctx, match.Driver, pendingOrder, match.DistanceKm)
	if notifyErr != nil {
		h.logger.Warn("driver notification failed",
			"orderId", pendingOrder.ID().String(),
			"driverId", match.Driver.ID().String(),
			"error", notifyErr)
	}
	if err = record.RecordNotification(notifyErr == nil); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, pendingOrder); err != nil {
		return false, err
	}
	if err = driverRepo.Update(ctx, match.Driver); err != nil {
		return false, err
	}
	if err = assignmentRepo.Add(ctx, record); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publisher.Publish(ports.Event{
		Kind:    ports.EventOrderUpdated,
		Payload: newOrderEventPayload(pendingOrder),
	})
	h.publisher.Publish(ports.Event{
		Kind:    ports.EventDriverUpdated,
		Payload: newDriverEventPayload(match.Driver),
	})
	h.publisher.Publish(ports.Event{
		Kind:    ports.EventNewAssignment,
		Payload: newAssignmentEventPayload(record),
	})

	return true, nil
}
