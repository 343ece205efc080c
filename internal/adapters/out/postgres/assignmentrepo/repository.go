package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment record. The unique index on order_id rejects
// a second assignment for the same order.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing assignment record.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the assignment for an order, the idempotency
// lookup of the assignment workflow.
func (r *GormAssignmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
