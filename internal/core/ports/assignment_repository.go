package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// records. Storage enforces at most one assignment per order.
type AssignmentRepository interface {
	// Add persists a new assignment record.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment record. In
	// practice the only change after creation is the notification outcome.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	// Returns an error satisfying errors.Is(err, errs.ErrObjectNotFound)
	// when no assignment with that id exists.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetByOrderID retrieves the assignment for the given order, if any.
	// Returns an error satisfying errors.Is(err, errs.ErrObjectNotFound)
	// when the order has never been matched. The assignment workflow uses
	// this lookup as its idempotency check.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
}
