package deliveryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new assignment. The unique index on order_id turns a
// concurrent second assignment into delivery.ErrAlreadyAssigned.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return delivery.ErrAlreadyAssigned
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a status change. When the row enters the Delivering
// status, the partial unique index on shipper_id turns a concurrent second
// start into delivery.ErrAnotherOrderInProgress.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "DeliveredAt", "ProofImages", "FailureReason").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) && aggregate.Status() == delivery.Delivering {
			return delivery.ErrAnotherOrderInProgress
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the assignment of an order, nil when none exists.
func (r *GormDeliveryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// CountDeliveringByShipper counts the shipper's assignments currently in
// the Delivering status.
func (r *GormDeliveryRepository) CountDeliveringByShipper(ctx context.Context, shipperID kernel.UUID) (int, error) {
	if err := shipperID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("shipper_id = ? AND status = ?", shipperID.Bytes(), int(delivery.Delivering)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetFreeShippers returns the ids of active rostered shippers with no open
// assignment.
func (r *GormDeliveryRepository) GetFreeShippers(ctx context.Context) ([]kernel.UUID, error) {
	var dtos []ShipperDTO
	err := r.db.WithContext(ctx).
		Where("active").
		Where(
			"NOT EXISTS (SELECT 1 FROM deliveries"+
				" WHERE deliveries.shipper_id = shippers.id AND deliveries.status IN ?)",
			[]int{int(delivery.Assigned), int(delivery.Delivering)},
		).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shippers := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		shippers = append(shippers, id)
	}

	return shippers, nil
}
