package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDriverIsNotConstructed is returned when using an improperly
// initialized Driver. Drivers must be created via NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errs.NewValueIsRequiredError(
	"driver must be created via NewDriver or RestoreDriver constructor")

// Driver is the courier aggregate. Eligibility for dispatch is the
// conjunction of three independent switches: online (presence, toggled by
// the driver), available (busy flag, toggled by the assignment workflow)
// and approved (onboarding review, toggled by an operator).
type Driver struct {
	id       kernel.UUID
	name     string
	chatID   string
	phone    string
	location kernel.Location

	isAvailable bool
	isOnline    bool
	approval    ApprovalStatus

	guard guard.ConstructorGuard
}

// NewDriver registers a driver at the given location. The driver starts
// available but offline and pending approval, so it is not dispatchable
// until it goes online and an operator approves it.
func NewDriver(id kernel.UUID, name, chatID, phone string, location kernel.Location) (*Driver, error) {
	if err := errors.Join(id.Validate(), location.Validate()); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if chatID == "" {
		return nil, errs.NewValueIsRequiredError("chatID")
	}

	return &Driver{
		id:          id,
		name:        name,
		chatID:      chatID,
		phone:       phone,
		location:    location,
		isAvailable: true,
		isOnline:    false,
		approval:    ApprovalPending,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriver reconstitutes a driver from persistence without re-running
// the registration rules. Used exclusively by repository adapters.
func RestoreDriver(id kernel.UUID, name, chatID, phone string, location kernel.Location,
	isAvailable, isOnline bool, approval ApprovalStatus) *Driver {
	return &Driver{
		id:          id,
		name:        name,
		chatID:      chatID,
		phone:       phone,
		location:    location,
		isAvailable: isAvailable,
		isOnline:    isOnline,
		approval:    approval,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate checks that the Driver was created via a constructor.
func (d *Driver) Validate() error {
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// ChatID returns the messaging chat identifier used for notifications.
func (d *Driver) ChatID() string {
	return d.chatID
}

// Phone returns the driver's phone number, possibly empty.
func (d *Driver) Phone() string {
	return d.phone
}

// Location returns the driver's last reported position.
func (d *Driver) Location() kernel.Location {
	return d.location
}

// IsAvailable reports whether the driver is free of an active order.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// IsOnline reports whether the driver is currently on shift.
func (d *Driver) IsOnline() bool {
	return d.isOnline
}

// Approval returns the onboarding review state.
func (d *Driver) Approval() ApprovalStatus {
	return d.approval
}

// IsDispatchable reports whether the driver may be matched to an order.
// All three switches must be on: online, available, approved.
func (d *Driver) IsDispatchable() bool {
	return d.isOnline && d.isAvailable && d.approval == ApprovalApproved
}

// MarkBusy flags the driver as occupied with an order.
// Only a dispatchable driver can become busy.
func (d *Driver) MarkBusy() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.IsDispatchable() {
		return errs.NewValueIsInvalidError("driver is not dispatchable")
	}

	d.isAvailable = false
	return nil
}

// MarkAvailable releases the driver after its order reaches a terminal
// state. Marking an already available driver is a no-op.
func (d *Driver) MarkAvailable() error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.isAvailable = true
	return nil
}

// SetOnline records a presence change reported by the driver.
func (d *Driver) SetOnline(online bool) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.isOnline = online
	return nil
}

// MoveTo records a position update reported by the driver.
func (d *Driver) MoveTo(location kernel.Location) error {
	if err := errors.Join(d.Validate(), location.Validate()); err != nil {
		return err
	}

	d.location = location
	return nil
}

// Approve marks the driver as passed onboarding review.
// Only a pending driver can be approved; the decision is final.
func (d *Driver) Approve() error {
	return d.applyReview(ApprovalApproved)
}

// Reject marks the driver as failed onboarding review.
// Only a pending driver can be rejected; the decision is final.
func (d *Driver) Reject() error {
	return d.applyReview(ApprovalRejected)
}

func (d *Driver) applyReview(decision ApprovalStatus) error {
	if err := d.Validate(); err != nil {
		return err
	}

	approval, err := d.approval.review(decision)
	if err != nil {
		return err
	}

	d.approval = approval
	return nil
}

// DistanceKmTo estimates the distance from the driver's position to the
// given point, in kilometers.
func (d *Driver) DistanceKmTo(target kernel.Location) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	return d.location.DistanceKm(target)
}
