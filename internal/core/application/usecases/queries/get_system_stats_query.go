package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetSystemStatsQueryIsNotConstructed = errors.New(
	"GetSystemStatsQuery must be created via NewGetSystemStatsQuery constructor",
)

// GetSystemStatsQuery retrieves the dashboard headline counters.
type GetSystemStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSystemStatsQuery creates a query for the headline counters.
func NewGetSystemStatsQuery() GetSystemStatsQuery {
	return GetSystemStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSystemStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetSystemStatsQueryIsNotConstructed)
}

// GetSystemStatsQueryResponse is the headline counter read model.
// Active orders are those assigned, picked up or in transit.
type GetSystemStatsQueryResponse struct {
	PendingOrders    int
	ActiveOrders     int
	TotalOrders      int
	OnlineDrivers    int
	AvailableDrivers int
	TotalDrivers     int
	TotalAssignments int
}
