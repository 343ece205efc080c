package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// AssignmentNotifier tells a driver about a new assignment over an
// external channel. Implementations must treat delivery as best effort:
// a failed send is reported as an error but never invalidates the match,
// which is recorded with a failed notification outcome instead.
type AssignmentNotifier interface {
	// NotifyAssignment sends the assignment details to the driver's chat.
	// The distance is the ranking distance at match time, in kilometers.
	NotifyAssignment(ctx context.Context, d *driver.Driver, o *order.Order, distanceKm float64) error
}

// DriverReviewNotifier tells a driver the outcome of onboarding review.
// Best effort like AssignmentNotifier: a failed send never reverts the
// review decision.
type DriverReviewNotifier interface {
	NotifyReviewOutcome(ctx context.Context, d *driver.Driver, approved bool) error
}
