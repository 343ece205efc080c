// Package services contains stateless domain services that coordinate
// multiple aggregates without owning state of their own.
package services

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNoDispatchableDriver is returned by SelectDriver when the candidate
// pool contains no driver that is online, available and approved. Callers
// treat this as an expected outcome, not a failure.
var ErrNoDispatchableDriver = errors.New("no dispatchable driver in the pool")

// Match is the result of driver selection: the chosen driver and the
// ranking distance from its position to the order pickup, in kilometers.
type Match struct {
	Driver     *driver.Driver
	DistanceKm float64
}

// DriverMatcher selects the driver for a pending order.
type DriverMatcher interface {
	// SelectDriver picks the dispatchable driver closest to the order's
	// pickup point. Returns ErrNoDispatchableDriver when none qualifies.
	SelectDriver(o *order.Order, candidates []*driver.Driver) (Match, error)
}

type driverMatcher struct{}

// NewDriverMatcher creates the nearest-driver matcher.
func NewDriverMatcher() DriverMatcher {
	return driverMatcher{}
}

// SelectDriver filters the pool to dispatchable drivers, ranks them by
// distance to the pickup point and returns the closest. Ties keep the
// first candidate encountered: the comparison is strict, so a later
// driver at the same distance never displaces an earlier one. Ordering
// of equal-distance candidates therefore follows the pool order, which
// is deliberately unspecified.
func (m driverMatcher) SelectDriver(o *order.Order, candidates []*driver.Driver) (Match, error) {
	if o == nil {
		return Match{}, errs.NewValueIsRequiredError("order")
	}
	if err := errors.Join(o.Validate(), o.Status().ValidateAssign()); err != nil {
		return Match{}, err
	}

	var best *driver.Driver
	bestDistance := 0.0

	for _, candidate := range candidates {
		if candidate == nil || !candidate.IsDispatchable() {
			continue
		}

		distance, err := candidate.DistanceKmTo(o.PickupLocation())
		if err != nil {
			return Match{}, err
		}

		if best == nil || distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		return Match{}, ErrNoDispatchableDriver
	}

	return Match{Driver: best, DistanceKm: bestDistance}, nil
}
