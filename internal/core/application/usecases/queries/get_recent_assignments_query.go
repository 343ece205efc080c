package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetRecentAssignmentsQueryIsNotConstructed = errors.New(
		"GetRecentAssignmentsQuery must be created via NewGetRecentAssignmentsQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// GetRecentAssignmentsQuery retrieves the latest matches for the dashboard
// activity feed, newest first.
type GetRecentAssignmentsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentAssignmentsQuery creates a query for the activity feed.
// The limit caps the number of returned entries and must be positive.
func NewGetRecentAssignmentsQuery(limit int) (GetRecentAssignmentsQuery, error) {
	query := GetRecentAssignmentsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLimit(limit); err != nil {
		return GetRecentAssignmentsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRecentAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentAssignmentsQueryIsNotConstructed)
}

// Limit returns the maximum number of entries to return.
func (q GetRecentAssignmentsQuery) Limit() int {
	return q.limit
}

func (q *GetRecentAssignmentsQuery) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	q.limit = limit
	return nil
}

// GetRecentAssignmentsQueryResponse is one activity feed entry. Order and
// driver names are denormalized in so the dashboard needs no extra lookups.
type GetRecentAssignmentsQueryResponse struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	DriverID           kernel.UUID
	OrderNumber        string
	DriverName         string
	DistanceKm         float64
	AssignedAt         time.Time
	NotificationStatus string
}
