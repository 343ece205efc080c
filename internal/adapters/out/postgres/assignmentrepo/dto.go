// Package assignmentrepo implements assignment persistence over GORM. The
// unique index on order_id backs the at-most-one-assignment-per-order
// invariant at the storage level.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the database representation of an assignment record.
type AssignmentDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID           uuid.UUID `gorm:"type:uuid;index"`
	DistanceKm         float64   `gorm:"type:double precision"`
	AssignedAt         time.Time `gorm:"index"`
	NotificationStatus string
}

// TableName overrides GORM's default naming to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderID:            aggregate.OrderID().Bytes(),
		DriverID:           aggregate.DriverID().Bytes(),
		DistanceKm:         aggregate.DistanceKm(),
		AssignedAt:         aggregate.AssignedAt(),
		NotificationStatus: aggregate.Notification().String(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	notification, err := assignment.NotificationOutcomeFromString(dto.NotificationStatus)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, driverID, dto.DistanceKm, dto.AssignedAt, notification,
	), nil
}
