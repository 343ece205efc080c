package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly
// initialized Assignment. Assignments must be created via NewAssignment
// or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errs.NewValueIsRequiredError(
	"assignment must be created via NewAssignment or RestoreAssignment constructor")

// Assignment is the immutable record of a single order-to-driver match.
// It captures which driver got which order, how far away the driver was at
// match time, and whether the driver was notified. After creation the only
// permitted mutation is recording the notification outcome, once.
type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	driverID   kernel.UUID
	distanceKm float64
	assignedAt time.Time

	notification NotificationOutcome

	guard guard.ConstructorGuard
}

// NewAssignment records a match between an order and a driver. The distance
// is the ranking distance computed at match time, in kilometers. The
// notification outcome starts pending.
func NewAssignment(id, orderID, driverID kernel.UUID, distanceKm float64) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
	); err != nil {
		return nil, err
	}

	if distanceKm < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm",
			fmt.Errorf("distance cannot be negative, got %f", distanceKm),
		)
	}

	return &Assignment{
		id:           id,
		orderID:      orderID,
		driverID:     driverID,
		distanceKm:   distanceKm,
		assignedAt:   time.Now().UTC(),
		notification: NotificationPending,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstitutes an assignment from persistence without
// re-running the creation rules. Used exclusively by repository adapters.
func RestoreAssignment(id, orderID, driverID kernel.UUID, distanceKm float64,
	assignedAt time.Time, notification NotificationOutcome) *Assignment {
	return &Assignment{
		id:           id,
		orderID:      orderID,
		driverID:     driverID,
		distanceKm:   distanceKm,
		assignedAt:   assignedAt,
		notification: notification,
		guard:        guard.NewConstructorGuard(),
	}
}

// Validate checks that the Assignment was created via a constructor.
func (a *Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the matched order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// DriverID returns the matched driver.
func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

// DistanceKm returns the ranking distance at match time, in kilometers.
func (a *Assignment) DistanceKm() float64 {
	return a.distanceKm
}

// AssignedAt returns the match timestamp.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Notification returns the notification outcome.
func (a *Assignment) Notification() NotificationOutcome {
	return a.notification
}

// RecordNotification stores whether the driver notification was delivered.
// It can be called exactly once; the record is immutable afterwards.
func (a *Assignment) RecordNotification(delivered bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.notification != NotificationPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"notificationOutcome",
			fmt.Errorf("outcome already recorded as %s", a.notification),
		)
	}

	if delivered {
		a.notification = NotificationSent
	} else {
		a.notification = NotificationFailed
	}
	return nil
}
