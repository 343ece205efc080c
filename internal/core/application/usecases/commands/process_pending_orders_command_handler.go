package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ProcessPendingOrdersCommandHandler runs the periodic dispatch cycle: it
// snapshots the pending backlog oldest first and tries to assign each order
// in turn, pacing the iterations so a burst of orders does not hammer the
// matching path and the notification channel.
//
// The handler owns a single-flight guard. Cycles can be triggered both by
// the scheduler and manually over HTTP; if a trigger fires while a cycle is
// still running, the new trigger returns immediately with zero assignments
// instead of overlapping. The guard is owned by the handler, not shared
// globally, so independent handler instances never contend.
//
// Use exactly one instance per backlog. The methods have pointer receivers
// because the guard must not be copied.
type ProcessPendingOrdersCommandHandler struct {
	orderUoWFactory OrderUoWFactory
	assignHandler   AssignOrderCommandHandler
	pacing          time.Duration
	logger          *slog.Logger

	inFlight atomic.Bool
}

// NewProcessPendingOrdersCommandHandler creates the dispatch cycle handler.
// The pacing duration is the delay inserted between consecutive orders.
func NewProcessPendingOrdersCommandHandler(orderUoWFactory OrderUoWFactory,
	assignHandler AssignOrderCommandHandler, pacing time.Duration,
	logger *slog.Logger) *ProcessPendingOrdersCommandHandler {
	return &ProcessPendingOrdersCommandHandler{
		orderUoWFactory: orderUoWFactory,
		assignHandler:   assignHandler,
		pacing:          pacing,
		logger:          logger.With("component", "dispatch_cycle"),
	}
}

// Handle runs one dispatch cycle and returns how many orders got a driver.
// A failed order is logged and skipped; it stays pending for the next
// cycle and never blocks the rest of the backlog. A re-entrant call while
// a cycle is running returns (0, nil) immediately.
func (h *ProcessPendingOrdersCommandHandler) Handle(ctx context.Context,
	command ProcessPendingOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	if !h.inFlight.CompareAndSwap(false, true) {
		h.logger.Debug("dispatch cycle already running, skipping trigger")
		return 0, nil
	}
	defer h.inFlight.Store(false)

	orderIDs, err := h.snapshotPendingOrderIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(orderIDs) == 0 {
		return 0, nil
	}

	assigned := 0
	for i, orderID := range orderIDs {
		if i > 0 {
			select {
			case <-ctx.Done():
				return assigned, ctx.Err()
			case <-time.After(h.pacing):
			}
		}

		cmd, err := NewAssignOrderCommand(orderID)
		if err != nil {
			h.logger.Error("building assign command failed",
				"orderId", orderID.String(), "error", err)
			continue
		}

		ok, err := h.assignHandler.Handle(ctx, cmd)
		if err != nil {
			h.logger.Error("order assignment failed",
				"orderId", orderID.String(), "error", err)
			continue
		}
		if ok {
			assigned++
		}
	}

	h.logger.Info("dispatch cycle finished",
		"pending", len(orderIDs), "assigned", assigned)

	return assigned, nil
}

// snapshotPendingOrderIDs reads the backlog ids in a short read-only
// transaction. Each order is then re-read inside its own assignment
// transaction, so working from a snapshot is safe: orders that progressed
// in the meantime are skipped there.
func (h *ProcessPendingOrdersCommandHandler) snapshotPendingOrderIDs(
	ctx context.Context) ([]kernel.UUID, error) {
	uow := h.orderUoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(pending))
	for _, o := range pending {
		orderIDs = append(orderIDs, o.ID())
	}

	return orderIDs, nil
}
