package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// assignments. The exclusivity rules are closed at this boundary: Add trips
// the one-assignment-per-order constraint, Update to the Delivering status
// trips the one-delivery-in-progress-per-shipper constraint. Neither is an
// application-level exists-then-write check.
type DeliveryRepository interface {
	// Add persists a new assignment. Fails with
	// delivery.ErrAlreadyAssigned when the order already has one.
	Add(ctx context.Context, aggregate *delivery.Assignment) error

	// Update persists a status change. A transition to Delivering fails
	// with delivery.ErrAnotherOrderInProgress when the shipper already has
	// a delivery in progress.
	Update(ctx context.Context, aggregate *delivery.Assignment) error

	// Get retrieves an assignment by id.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error)

	// GetByOrder retrieves the assignment of an order, or nil when the
	// order has none.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error)

	// CountDeliveringByShipper returns how many assignments the shipper
	// currently has in the Delivering status.
	CountDeliveringByShipper(ctx context.Context, shipperID kernel.UUID) (int, error)

	// GetFreeShippers returns the ids of rostered shippers with no open
	// (Assigned or Delivering) assignment. Used by the auto-assignment job.
	GetFreeShippers(ctx context.Context) ([]kernel.UUID, error)
}
