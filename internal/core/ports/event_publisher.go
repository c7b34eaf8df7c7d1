package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher emits fire-and-forget status events for the notification
// collaborator. Publishing happens after the state transition committed and
// must never influence it: implementations absorb and log their own
// failures, which is why these methods return nothing.
type EventPublisher interface {
	// OrderStatusChanged announces that an order reached a new status.
	OrderStatusChanged(ctx context.Context, orderID kernel.UUID, status order.Status)

	// DeliveryStatusChanged announces that a delivery assignment reached a
	// new status.
	DeliveryStatusChanged(ctx context.Context, assignmentID, orderID kernel.UUID, status delivery.Status)
}

// CompletionPolicy decides what happens to an order once its delivery is
// completed. The coupling between delivery completion and order completion
// is a deployment decision, so it is a swappable policy rather than a
// hard-coded side effect.
type CompletionPolicy interface {
	// OrderDelivered is invoked after a delivery completion committed.
	OrderDelivered(ctx context.Context, orderID kernel.UUID) error
}
