package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads the pending backlog with direct SQL.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for backlog queries.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle returns the pending orders oldest first, matching the order in
// which the dispatch cycle serves them.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			restaurant_name,
			pickup_lat,
			pickup_lon,
			delivery_address,
			amount,
			created_at
		FROM orders
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingOrdersQueryResponse
		var id uuid.UUID
		var pickupLat, pickupLon float64

		err = rows.Scan(
			&id,
			&response.OrderNumber,
			&response.RestaurantName,
			&pickupLat,
			&pickupLon,
			&response.DeliveryAddress,
			&response.Amount,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		pickup, locErr := kernel.NewLocation(
			kernel.Degrees(pickupLat),
			kernel.Degrees(pickupLon),
		)
		if locErr != nil {
			return nil, locErr
		}
		response.Pickup = pickup

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
