package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler reads the fleet list with direct SQL.
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDriversQueryHandler creates a handler for fleet queries.
func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns all drivers sorted by name.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetAllDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			chat_id,
			phone,
			location_lat,
			location_lon,
			is_available,
			is_online,
			approval_status
		FROM drivers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAllDriversQueryResponse
		var id uuid.UUID
		var lat, lon float64

		err = rows.Scan(
			&id,
			&response.Name,
			&response.ChatID,
			&response.Phone,
			&lat,
			&lon,
			&response.IsAvailable,
			&response.IsOnline,
			&response.ApprovalStatus,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = driverID

		location, locErr := kernel.NewLocation(kernel.Degrees(lat), kernel.Degrees(lon))
		if locErr != nil {
			return nil, locErr
		}
		response.Location = location

		drivers = append(drivers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
