// Package ports defines the outbound contracts of the dispatch core:
// repositories, the unit of work, driver notification and event
// publication. Adapters implement these interfaces; the application
// layer depends only on them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	// The driver must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	// Returns an error satisfying errors.Is(err, errs.ErrObjectNotFound)
	// when no driver with that id exists.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllDispatchable retrieves every driver currently eligible for
	// matching: online, available and approved. The returned order is
	// unspecified; equal-distance ties during matching follow it.
	GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error)
}
