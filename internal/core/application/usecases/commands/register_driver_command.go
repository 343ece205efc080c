package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrDriverNameIsRequired = errors.New("driver name is required")
	ErrChatIDIsRequired     = errors.New("chat id is required")
)

// RegisterDriverCommand represents a driver signing up for dispatch.
// Registered drivers start pending approval and offline.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	chatID   string
	phone    string
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a new driver.
// Phone is optional; everything else is required.
func NewRegisterDriverCommand(driverID kernel.UUID, name, chatID, phone string,
	location kernel.Location) (RegisterDriverCommand, error) {
	cmd := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setName(name),
		cmd.setChatID(chatID),
		cmd.setLocation(location),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	cmd.phone = phone
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the unique identifier for the driver.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// ChatID returns the messaging chat identifier.
func (c RegisterDriverCommand) ChatID() string {
	return c.chatID
}

// Phone returns the driver's phone number, possibly empty.
func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

// Location returns the driver's starting position.
func (c RegisterDriverCommand) Location() kernel.Location {
	return c.location
}

func (c *RegisterDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setChatID(chatID string) error {
	if chatID == "" {
		return ErrChatIDIsRequired
	}

	c.chatID = chatID
	return nil
}

func (c *RegisterDriverCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
