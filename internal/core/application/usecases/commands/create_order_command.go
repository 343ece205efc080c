package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired     = errors.New("order number is required")
	ErrRestaurantNameIsRequired  = errors.New("restaurant name is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrAmountIsRequired          = errors.New("amount is required")
)

// CreateOrderCommand represents a request to register a new delivery order.
// The order enters the system pending and becomes visible to the next
// dispatch cycle immediately.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	orderNumber     string
	restaurantName  string
	pickupLocation  kernel.Location
	deliveryAddress string
	deliveryCoords  kernel.Location
	amount          string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates identifiers, coordinates and required text fields.
func NewCreateOrderCommand(orderID kernel.UUID, orderNumber, restaurantName string,
	pickupLocation kernel.Location, deliveryAddress string,
	deliveryCoords kernel.Location, amount string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setRestaurantName(restaurantName),
		cmd.setPickupLocation(pickupLocation),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setDeliveryCoords(deliveryCoords),
		cmd.setAmount(amount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-facing order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// RestaurantName returns the pickup restaurant name.
func (c CreateOrderCommand) RestaurantName() string {
	return c.restaurantName
}

// PickupLocation returns the pickup coordinates.
func (c CreateOrderCommand) PickupLocation() kernel.Location {
	return c.pickupLocation
}

// DeliveryAddress returns the free-form delivery address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryCoords returns the delivery coordinates.
func (c CreateOrderCommand) DeliveryCoords() kernel.Location {
	return c.deliveryCoords
}

// Amount returns the order total as a decimal string.
func (c CreateOrderCommand) Amount() string {
	return c.amount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setRestaurantName(restaurantName string) error {
	if restaurantName == "" {
		return ErrRestaurantNameIsRequired
	}

	c.restaurantName = restaurantName
	return nil
}

func (c *CreateOrderCommand) setPickupLocation(pickupLocation kernel.Location) error {
	if err := pickupLocation.Validate(); err != nil {
		return err
	}

	c.pickupLocation = pickupLocation
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setDeliveryCoords(deliveryCoords kernel.Location) error {
	if err := deliveryCoords.Validate(); err != nil {
		return err
	}

	c.deliveryCoords = deliveryCoords
	return nil
}

func (c *CreateOrderCommand) setAmount(amount string) error {
	if amount == "" {
		return ErrAmountIsRequired
	}

	c.amount = amount
	return nil
}
