package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an error satisfying errors.Is(err, errs.ErrObjectNotFound)
	// when no order with that id exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves every order still waiting for a driver,
	// ordered oldest first. The dispatch cycle relies on this ordering
	// to serve the backlog fairly.
	GetAllPending(ctx context.Context) ([]*order.Order, error)
}
