package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReviewDriverCommandIsNotConstructed = errors.New(
	"ReviewDriverCommand must be created via NewReviewDriverCommand constructor",
)

// ReviewDriverCommand records an operator's onboarding decision for a
// pending driver.
type ReviewDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	approved bool

	guard guard.ConstructorGuard
}

// NewReviewDriverCommand creates a command to approve or reject a driver.
func NewReviewDriverCommand(driverID kernel.UUID, approved bool) (ReviewDriverCommand, error) {
	cmd := ReviewDriverCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return ReviewDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewDriverCommand) Validate() error {
	return c.guard.Validate(ErrReviewDriverCommandIsNotConstructed)
}

// DriverID returns the driver under review.
func (c ReviewDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Approved reports the operator's decision.
func (c ReviewDriverCommand) Approved() bool {
	return c.approved
}

func (c *ReviewDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
