package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecentAssignmentsQueryHandler reads the activity feed with direct SQL.
type GetRecentAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetRecentAssignmentsQueryHandler creates a handler for activity feed queries.
func NewGetRecentAssignmentsQueryHandler(db *gorm.DB) GetRecentAssignmentsQueryHandler {
	return GetRecentAssignmentsQueryHandler{db: db}
}

// Handle returns the most recent assignments, newest first, joined with
// order numbers and driver names.
func (h GetRecentAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetRecentAssignmentsQuery,
) ([]GetRecentAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	assignments := make([]GetRecentAssignmentsQueryResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			a.driver_id,
			o.order_number,
			d.name,
			a.distance_km,
			a.assigned_at,
			a.notification_status
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		JOIN drivers d ON d.id = a.driver_id
		ORDER BY a.assigned_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetRecentAssignmentsQueryResponse
		var id, orderID, driverID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&driverID,
			&response.OrderNumber,
			&response.DriverName,
			&response.DistanceKm,
			&response.AssignedAt,
			&response.NotificationStatus,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if response.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}

		assignments = append(assignments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
