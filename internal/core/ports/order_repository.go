package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order. The write is
	// conditional on the status the transition started from: when a
	// concurrent transaction moved the order away from that status first,
	// nothing is written and order.ErrInvalidStatus is returned.
	Update(ctx context.Context, aggregate *order.Order, from order.Status) error

	// Get retrieves an order with its lines by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstShippedUnassigned retrieves the oldest shipped order that has
	// no delivery assignment yet. Used by the shipper auto-assignment job.
	GetFirstShippedUnassigned(ctx context.Context) (*order.Order, error)

	// SumCompletedTotals returns the sum of final totals over the customer's
	// completed orders. Input to the ranking recomputation.
	SumCompletedTotals(ctx context.Context, customerID kernel.UUID) (kernel.Money, error)
}
