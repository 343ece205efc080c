// Package driverrepo implements driver persistence over GORM, converting
// between the driver aggregate and its relational representation.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the database representation of a driver aggregate.
type DriverDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	ChatID         string  `gorm:"uniqueIndex"`
	Phone          string
	LocationLat    float64 `gorm:"type:double precision"`
	LocationLon    float64 `gorm:"type:double precision"`
	IsAvailable    bool
	IsOnline       bool
	ApprovalStatus string `gorm:"index"`
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		ChatID:         aggregate.ChatID(),
		Phone:          aggregate.Phone(),
		LocationLat:    float64(aggregate.Location().Latitude()),
		LocationLon:    float64(aggregate.Location().Longitude()),
		IsAvailable:    aggregate.IsAvailable(),
		IsOnline:       aggregate.IsOnline(),
		ApprovalStatus: aggregate.Approval().String(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(
		kernel.Degrees(dto.LocationLat),
		kernel.Degrees(dto.LocationLon),
	)
	if err != nil {
		return nil, err
	}

	approval, err := driver.ApprovalStatusFromString(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id, dto.Name, dto.ChatID, dto.Phone, location,
		dto.IsAvailable, dto.IsOnline, approval,
	), nil
}
