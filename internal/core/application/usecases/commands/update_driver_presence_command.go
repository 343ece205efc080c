package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDriverPresenceCommandIsNotConstructed = errors.New(
	"UpdateDriverPresenceCommand must be created via NewUpdateDriverPresenceCommand constructor",
)

// UpdateDriverPresenceCommand records a driver going on or off shift,
// optionally together with a position update. Availability is not part of
// presence: it is owned by the assignment and delivery workflows.
type UpdateDriverPresenceCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	online   bool
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateDriverPresenceCommand creates a presence update command.
// Pass a nil location to keep the driver's current position.
func NewUpdateDriverPresenceCommand(driverID kernel.UUID, online bool,
	location *kernel.Location) (UpdateDriverPresenceCommand, error) {
	cmd := UpdateDriverPresenceCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setLocation(location),
	); err != nil {
		return UpdateDriverPresenceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverPresenceCommandIsNotConstructed)
}

// DriverID returns the driver reporting presence.
func (c UpdateDriverPresenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Online reports whether the driver is going on shift.
func (c UpdateDriverPresenceCommand) Online() bool {
	return c.online
}

// Location returns the reported position, or nil when unchanged.
func (c UpdateDriverPresenceCommand) Location() *kernel.Location {
	return c.location
}

func (c *UpdateDriverPresenceCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *UpdateDriverPresenceCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
