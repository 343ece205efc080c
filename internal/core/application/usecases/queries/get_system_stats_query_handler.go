package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSystemStatsQueryHandler computes the headline counters with a single
// round trip of aggregate SQL.
type GetSystemStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetSystemStatsQueryHandler creates a handler for the stats query.
func NewGetSystemStatsQueryHandler(db *gorm.DB) GetSystemStatsQueryHandler {
	return GetSystemStatsQueryHandler{db: db}
}

// Handle returns the current counters.
func (h GetSystemStatsQueryHandler) Handle(
	ctx context.Context,
	query GetSystemStatsQuery,
) (GetSystemStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSystemStatsQueryResponse{}, err
	}

	var response GetSystemStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM orders WHERE status IN ('assigned', 'picked_up', 'in_transit')),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM drivers WHERE is_online),
			(SELECT COUNT(*) FROM drivers WHERE is_online AND is_available AND approval_status = 'approved'),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM assignments)
	`).Row()

	err := row.Scan(
		&response.PendingOrders,
		&response.ActiveOrders,
		&response.TotalOrders,
		&response.OnlineDrivers,
		&response.AvailableDrivers,
		&response.TotalDrivers,
		&response.TotalAssignments,
	)
	if err != nil {
		return GetSystemStatsQueryResponse{}, err
	}

	return response, nil
}
