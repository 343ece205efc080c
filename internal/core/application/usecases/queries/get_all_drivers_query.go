package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllDriversQueryIsNotConstructed = errors.New(
	"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
)

// GetAllDriversQuery retrieves every registered driver with its current
// presence, availability and approval state for the dashboard fleet view.
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDriversQuery creates a query for the fleet list.
func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

// GetAllDriversQueryResponse is one driver in the fleet read model.
type GetAllDriversQueryResponse struct {
	ID             kernel.UUID
	Name           string
	ChatID         string
	Phone          string
	Location       kernel.Location
	IsAvailable    bool
	IsOnline       bool
	ApprovalStatus string
}
