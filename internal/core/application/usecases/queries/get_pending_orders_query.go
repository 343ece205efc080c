// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Queries bypass the aggregates and read optimized models
// straight from the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves the dispatch backlog: every order still
// waiting for a driver, oldest first.
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for the pending backlog.
func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse is one backlog entry in the read model.
type GetPendingOrdersQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	RestaurantName  string
	Pickup          kernel.Location
	DeliveryAddress string
	Amount          string
	CreatedAt       time.Time
}
