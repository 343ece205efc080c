package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when using an improperly
// initialized Order. Orders must be created via NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError(
	"order must be created via NewOrder or RestoreOrder constructor")

// Order is the delivery order aggregate. It owns the lifecycle status and the
// link to the assigned driver; all state changes go through its methods so
// the status machine invariants hold everywhere the aggregate travels.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	restaurantName  string
	pickupLocation  kernel.Location
	deliveryAddress string
	deliveryCoords  kernel.Location
	amount          string

	status    Status
	driverID  *kernel.UUID
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order ready for dispatch.
func NewOrder(id kernel.UUID, orderNumber, restaurantName string,
	pickupLocation kernel.Location, deliveryAddress string,
	deliveryCoords kernel.Location, amount string) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		pickupLocation.Validate(),
		deliveryCoords.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if restaurantName == "" {
		return nil, errs.NewValueIsRequiredError("restaurantName")
	}
	if deliveryAddress == "" {
		return nil, errs.NewValueIsRequiredError("deliveryAddress")
	}
	if amount == "" {
		return nil, errs.NewValueIsRequiredError("amount")
	}

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		restaurantName:  restaurantName,
		pickupLocation:  pickupLocation,
		deliveryAddress: deliveryAddress,
		deliveryCoords:  deliveryCoords,
		amount:          amount,
		status:          Pending,
		createdAt:       time.Now().UTC(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstitutes an order from persistence without re-running
// the creation rules. Used exclusively by repository adapters.
func RestoreOrder(id kernel.UUID, orderNumber, restaurantName string,
	pickupLocation kernel.Location, deliveryAddress string,
	deliveryCoords kernel.Location, amount string,
	status Status, driverID *kernel.UUID, createdAt time.Time) *Order {
	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		restaurantName:  restaurantName,
		pickupLocation:  pickupLocation,
		deliveryAddress: deliveryAddress,
		deliveryCoords:  deliveryCoords,
		amount:          amount,
		status:          status,
		driverID:        driverID,
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}
}

// Validate checks that the Order was created via a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// RestaurantName returns the pickup restaurant name.
func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// PickupLocation returns the pickup coordinates.
func (o *Order) PickupLocation() kernel.Location {
	return o.pickupLocation
}

// DeliveryAddress returns the free-form delivery address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryCoords returns the delivery coordinates.
func (o *Order) DeliveryCoords() kernel.Location {
	return o.deliveryCoords
}

// Amount returns the order total as a decimal string.
func (o *Order) Amount() string {
	return o.amount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the assigned driver, or nil before assignment.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsAssigned reports whether a driver has been linked to the order.
func (o *Order) IsAssigned() bool {
	return o.driverID != nil
}

// Assign links a driver to the order and moves it to Assigned.
// Valid only from Pending; an order is matched at most once.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := errors.Join(o.Validate(), driverID.Validate()); err != nil {
		return err
	}

	status, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = status
	o.driverID = &driverID
	return nil
}

// TransitionTo advances the order along the delivery chain or cancels it.
// The driver link is never touched here: releasing the driver on terminal
// states is the caller's responsibility, because the driver aggregate is
// outside this boundary.
func (o *Order) TransitionTo(next Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	status, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = status
	return nil
}
