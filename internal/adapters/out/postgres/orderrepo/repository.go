package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update persists the order's current status. Lines and totals never change
// after creation, so only the status column is written. The write carries the
// pre-transition status as a predicate: when a concurrent transaction already
// moved the order (two cancels racing on the same snapshot), zero rows are
// affected and the loser gets order.ErrInvalidStatus without touching the row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, from order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(from)).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s is no longer %s",
			order.ErrInvalidStatus, aggregate.ID(), from)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstShippedUnassigned retrieves the oldest shipped order without a
// delivery assignment.
func (r *GormOrderRepository) GetFirstShippedUnassigned(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ?", int(order.Shipped)).
		Where("NOT EXISTS (SELECT 1 FROM deliveries WHERE deliveries.order_id = orders.id)").
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first shipped unassigned")
		}
		return nil, err
	}

	return toDomain(dto)
}

// SumCompletedTotals sums the final totals over the customer's completed
// orders.
func (r *GormOrderRepository) SumCompletedTotals(ctx context.Context, customerID kernel.UUID) (kernel.Money, error) {
	if err := customerID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("COALESCE(SUM(final_total), 0)").
		Where("customer_id = ? AND status = ?", customerID.Bytes(), int(order.Completed)).
		Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}

	return kernel.NewMoney(sum)
}
