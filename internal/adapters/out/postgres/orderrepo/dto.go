// Package orderrepo implements order persistence over GORM, converting
// between the order aggregate and its relational representation.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. Statuses
// are stored as their wire strings so dashboard queries and constraints
// stay readable.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"uniqueIndex"`
	RestaurantName  string
	PickupLat       float64 `gorm:"type:double precision"`
	PickupLon       float64 `gorm:"type:double precision"`
	DeliveryAddress string
	DeliveryLat     float64 `gorm:"type:double precision"`
	DeliveryLon     float64 `gorm:"type:double precision"`
	Amount          string     `gorm:"type:decimal(10,2)"`
	Status          string     `gorm:"index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		RestaurantName:  aggregate.RestaurantName(),
		PickupLat:       float64(aggregate.PickupLocation().Latitude()),
		PickupLon:       float64(aggregate.PickupLocation().Longitude()),
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveryLat:     float64(aggregate.DeliveryCoords().Latitude()),
		DeliveryLon:     float64(aggregate.DeliveryCoords().Longitude()),
		Amount:          aggregate.Amount(),
		Status:          aggregate.Status().String(),
		DriverID:        driverID,
		CreatedAt:       aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := kernel.NewLocation(kernel.Degrees(dto.PickupLat), kernel.Degrees(dto.PickupLon))
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewLocation(kernel.Degrees(dto.DeliveryLat), kernel.Degrees(dto.DeliveryLon))
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.OrderNumber, dto.RestaurantName,
		pickup, dto.DeliveryAddress, delivery, dto.Amount,
		status, driverID, dto.CreatedAt,
	), nil
}
