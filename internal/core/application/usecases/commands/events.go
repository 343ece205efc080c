package commands

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// Event payloads are flat snapshots of the affected entity, shaped for the
// dashboard stream. They deliberately duplicate the HTTP response DTOs so
// the core does not depend on the inbound adapter.

type orderEventPayload struct {
	ID              string  `json:"id"`
	OrderNumber     string  `json:"orderNumber"`
	RestaurantName  string  `json:"restaurantName"`
	PickupLat       float64 `json:"pickupLat"`
	PickupLon       float64 `json:"pickupLon"`
	DeliveryAddress string  `json:"deliveryAddress"`
	DeliveryLat     float64 `json:"deliveryLat"`
	DeliveryLon     float64 `json:"deliveryLon"`
	Amount          string  `json:"amount"`
	Status          string  `json:"status"`
	DriverID        *string `json:"driverId"`
	CreatedAt       string  `json:"createdAt"`
}

func newOrderEventPayload(o *order.Order) orderEventPayload {
	payload := orderEventPayload{
		ID:              o.ID().String(),
		OrderNumber:     o.OrderNumber(),
		RestaurantName:  o.RestaurantName(),
		PickupLat:       float64(o.PickupLocation().Latitude()),
		PickupLon:       float64(o.PickupLocation().Longitude()),
		DeliveryAddress: o.DeliveryAddress(),
		DeliveryLat:     float64(o.DeliveryCoords().Latitude()),
		DeliveryLon:     float64(o.DeliveryCoords().Longitude()),
		Amount:          o.Amount(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt().Format(time.RFC3339),
	}

	if o.DriverID() != nil {
		driverID := o.DriverID().String()
		payload.DriverID = &driverID
	}

	return payload
}

type driverEventPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ChatID      string  `json:"chatId"`
	Phone       string  `json:"phone"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	IsAvailable bool    `json:"isAvailable"`
	IsOnline    bool    `json:"isOnline"`
	Approval    string  `json:"approvalStatus"`
}

func newDriverEventPayload(d *driver.Driver) driverEventPayload {
	return driverEventPayload{
		ID:          d.ID().String(),
		Name:        d.Name(),
		ChatID:      d.ChatID(),
		Phone:       d.Phone(),
		Lat:         float64(d.Location().Latitude()),
		Lon:         float64(d.Location().Longitude()),
		IsAvailable: d.IsAvailable(),
		IsOnline:    d.IsOnline(),
		Approval:    d.Approval().String(),
	}
}

type assignmentEventPayload struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"orderId"`
	DriverID     string  `json:"driverId"`
	DistanceKm   float64 `json:"distanceKm"`
	AssignedAt   string  `json:"assignedAt"`
	Notification string  `json:"notificationStatus"`
}

func newAssignmentEventPayload(a *assignment.Assignment) assignmentEventPayload {
	return assignmentEventPayload{
		ID:           a.ID().String(),
		OrderID:      a.OrderID().String(),
		DriverID:     a.DriverID().String(),
		DistanceKm:   a.DistanceKm(),
		AssignedAt:   a.AssignedAt().Format(time.RFC3339),
		Notification: a.Notification().String(),
	}
}
