package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// State transitions:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered
//	   │            │            │             │
//	   └────────────┴────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal: no further transitions are allowed.
// Transitions are monotonic; there is no backward path and no skipping of
// the assigned step. The pending -> assigned transition is reserved for the
// assignment workflow (Order.Assign) and is rejected by TransitionTo.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly created order,
	// waiting for a driver to be assigned.
	Pending

	// Assigned indicates a driver has been matched to the order.
	Assigned

	// PickedUp indicates the driver has collected the order.
	PickedUp

	// InTransit indicates the order is on its way to the delivery address.
	InTransit

	// Delivered is the terminal success state.
	Delivered

	// Cancelled is the terminal abort state, reachable from any
	// non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "picked_up"). Unknown strings are rejected.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status ("pending", "picked_up", ...).
// It implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// successor returns the next status in the forward delivery chain.
func (s Status) successor() (Status, bool) {
	switch s {
	case Pending:
		return Assigned, true
	case Assigned:
		return PickedUp, true
	case PickedUp:
		return InTransit, true
	case InTransit:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// ValidateAssign checks that the status allows driver assignment.
// Only pending orders can be assigned; an order is matched at most once.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return nil
}

// Assign transitions the status to Assigned.
// Valid only from Pending; used by Order.Assign.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return Unknown, err
	}

	return Assigned, nil
}

// TransitionTo validates a delivery-progress transition and returns the new
// status. Permitted moves are one forward step along the chain, or Cancelled
// from any non-terminal state. Assigned is never a valid target here: the
// match is applied through Assign only. On rejection the current status is
// reported so the caller knows it was not eligible.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next == Cancelled && !s.IsTerminal() && s != Unknown {
		return Cancelled, nil
	}

	if succ, ok := s.successor(); ok && next == succ && next != Assigned {
		return next, nil
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("transition from %s to %s is not allowed", s, next),
	)
}
